// Package dbtx lets gorm repositories join a *sql.Tx opened by a service.
package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a session of db whose statements run on tx. A nil tx returns
// db unchanged. db itself keeps its connection pool.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	// Session only clones the Statement when a Context is set; without the
	// clone the pool swap below would land on db.Statement.
	session := db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	session.Statement.ConnPool = tx
	return session
}
