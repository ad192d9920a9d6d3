package databases

import "gorm.io/gorm"

// InMemoryDSN opens a private in-memory database, used by tests.
const InMemoryDSN = ":memory:"

type SqlConnection interface {
	GetDB() *gorm.DB
	IsConnected() bool
	Run() error
	Shutdown()
}
