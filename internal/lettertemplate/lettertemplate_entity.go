package lettertemplate

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Type string

const (
	TypeOfferLetter       Type = "offer_letter"
	TypeAppointmentLetter Type = "appointment_letter"
	TypeInterviewCall     Type = "interview_call"
	TypeRejectionLetter   Type = "rejection_letter"
	TypeRelievingLetter   Type = "relieving_letter"
	TypeExperienceLetter  Type = "experience_letter"
	TypeInternshipLetter  Type = "internship_letter"
	TypeWarningLetter     Type = "warning_letter"
	TypeGeneral           Type = "general"
)

var knownTypes = map[Type]struct{}{
	TypeOfferLetter:       {},
	TypeAppointmentLetter: {},
	TypeInterviewCall:     {},
	TypeRejectionLetter:   {},
	TypeRelievingLetter:   {},
	TypeExperienceLetter:  {},
	TypeInternshipLetter:  {},
	TypeWarningLetter:     {},
	TypeGeneral:           {},
}

func (t Type) Valid() bool {
	_, ok := knownTypes[t]
	return ok
}

// LetterTemplate is one document of the letter_templates collection. Name is
// unique; a locked template can no longer be overwritten through the API.
type LetterTemplate struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Type         Type               `bson:"type"`
	Subject      string             `bson:"subject"`
	BodyContent  string             `bson:"bodyContent"`
	Variables    []string           `bson:"variables"`
	IsActive     bool               `bson:"isActive"`
	IsLocked     bool               `bson:"isLocked"`
	PDFURL       string             `bson:"pdfUrl,omitempty"`
	LocalPath    string             `bson:"localPath,omitempty"`
	PublicID     string             `bson:"publicId,omitempty"`
	ResourceType string             `bson:"resourceType,omitempty"`
	IsFixedPDF   bool               `bson:"isFixedPdf"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.\-]+)\s*\}\}`)

// Placeholders returns the distinct {{name}} tokens of the given texts in
// order of first appearance.
func Placeholders(texts ...string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, text := range texts {
		for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// substitute replaces every known placeholder using the escape function and
// leaves unknown ones untouched. Missing names are returned once each.
func substitute(text string, values map[string]string, escape func(string) string) (string, []string) {
	var missing []string
	seen := make(map[string]struct{})

	out := placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := strings.TrimSpace(placeholderPattern.FindStringSubmatch(token)[1])
		if v, ok := values[name]; ok {
			return escape(v)
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			missing = append(missing, name)
		}
		return token
	})
	return out, missing
}
