package repo

import (
	"gorm.io/gorm"

	"github.com/packnbake/storefront/internal/idgen"
)

// GormRepo is the persistent store behind every service. IDs come from the
// injected generator so tests can run deterministically.
type GormRepo struct {
	DB  *gorm.DB
	IDs idgen.Generator
}

func New(db *gorm.DB, ids idgen.Generator) *GormRepo {
	return &GormRepo{DB: db, IDs: ids}
}
