package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kind names an entity type as it appears in catalog URLs.
type Kind string

const (
	KindGenre        Kind = "genre"
	KindBook         Kind = "book"
	KindAuthor       Kind = "author"
	KindBookInstance Kind = "bookinstance"
)

// URL returns the canonical detail path of an entity.
func URL(kind Kind, id string) string {
	return "/catalog/" + string(kind) + "/" + id
}

// ListURL returns the list path for an entity type, e.g. /catalog/genres.
func ListURL(kind Kind) string {
	return "/catalog/" + string(kind) + "s"
}

// DateLayout is the ISO-8601 calendar date layout used by forms and storage.
const DateLayout = "2006-01-02"

type InstanceStatus string

const (
	StatusAvailable   InstanceStatus = "Available"
	StatusMaintenance InstanceStatus = "Maintenance"
	StatusLoaned      InstanceStatus = "Loaned"
	StatusReserved    InstanceStatus = "Reserved"
)

// InstanceStatuses lists the statuses in the order forms offer them.
var InstanceStatuses = []InstanceStatus{
	StatusMaintenance,
	StatusAvailable,
	StatusLoaned,
	StatusReserved,
}

func (s InstanceStatus) Valid() bool {
	for _, known := range InstanceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Genre struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Author struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	FamilyName  string     `gorm:"index;size:100;not null" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Book struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"index;size:512;not null" json:"title"`
	AuthorID  string    `gorm:"index;size:36" json:"author_id"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Summary   string    `gorm:"type:text" json:"summary"`
	ISBN      string    `gorm:"size:20" json:"isbn"`
	Genres    []Genre   `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookInstance is a physical copy of a Book.
type BookInstance struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	BookID    string         `gorm:"index;size:36" json:"book_id"`
	Book      Book           `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Imprint   string         `gorm:"size:512;not null" json:"imprint"`
	Status    InstanceStatus `gorm:"index;size:20;default:'Maintenance'" json:"status"`
	DueBack   *time.Time     `json:"due_back,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Genre) TableName() string {
	return "genres"
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

func (BookInstance) TableName() string {
	return "book_instances"
}

func newID() string {
	return uuid.NewString()
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = newID()
	}
	return nil
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = newID()
	}
	return nil
}

func (bi *BookInstance) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == "" {
		bi.ID = newID()
	}
	return nil
}

// BeforeSave applies the status default and rejects statuses outside the enum.
func (bi *BookInstance) BeforeSave(tx *gorm.DB) error {
	if bi.Status == "" {
		bi.Status = StatusMaintenance
	}
	if !bi.Status.Valid() {
		return fmt.Errorf("book instance status %q: %w", bi.Status, ErrInvalidStatus)
	}
	return nil
}

func (g Genre) URL() string {
	return URL(KindGenre, g.ID)
}

func (a Author) URL() string {
	return URL(KindAuthor, a.ID)
}

func (b Book) URL() string {
	return URL(KindBook, b.ID)
}

func (bi BookInstance) URL() string {
	return URL(KindBookInstance, bi.ID)
}

// Name returns "Family, First", or an empty string when either part is missing.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders birth and death dates as "YYYY-MM-DD - YYYY-MM-DD".
func (a Author) Lifespan() string {
	var b strings.Builder
	if a.DateOfBirth != nil {
		b.WriteString(a.DateOfBirth.Format(DateLayout))
	}
	b.WriteString(" - ")
	if a.DateOfDeath != nil {
		b.WriteString(a.DateOfDeath.Format(DateLayout))
	}
	return b.String()
}

func (a Author) DateOfBirthValue() string {
	return formatDate(a.DateOfBirth)
}

func (a Author) DateOfDeathValue() string {
	return formatDate(a.DateOfDeath)
}

// DueBackValue formats the due date for date inputs; empty when unset.
func (bi BookInstance) DueBackValue() string {
	return formatDate(bi.DueBack)
}

// DueBackFormatted is the human readable due date, e.g. "Jan 2nd, 2006".
func (bi BookInstance) DueBackFormatted() string {
	if bi.DueBack == nil {
		return ""
	}
	d := bi.DueBack
	return fmt.Sprintf("%s %d%s, %d", d.Format("Jan"), d.Day(), ordinalSuffix(d.Day()), d.Year())
}

// HasGenre reports whether the book is tagged with the given genre id.
func (b Book) HasGenre(id string) bool {
	for _, g := range b.Genres {
		if g.ID == id {
			return true
		}
	}
	return false
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
