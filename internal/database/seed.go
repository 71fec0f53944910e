package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/library/internal/entities"
)

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// Seed fills an empty catalog with a handful of authors, genres, books and copies.
// It does nothing when any book already exists.
func (d *Database) Seed() error {
	var count int64
	if err := d.DB.Model(&entities.Book{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if count > 0 {
		log.Printf("Catalog already has %d books, skipping seed", count)
		return nil
	}

	return d.DB.Transaction(func(tx *gorm.DB) error {
		fantasy := entities.Genre{Name: "Fantasy"}
		scifi := entities.Genre{Name: "Science Fiction"}
		poetry := entities.Genre{Name: "French Poetry"}
		for _, g := range []*entities.Genre{&fantasy, &scifi, &poetry} {
			if err := tx.Create(g).Error; err != nil {
				return fmt.Errorf("create genre %s: %w", g.Name, err)
			}
		}

		rothfuss := entities.Author{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: date(1973, time.June, 6)}
		asimov := entities.Author{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: date(1920, time.January, 2), DateOfDeath: date(1992, time.April, 6)}
		for _, a := range []*entities.Author{&rothfuss, &asimov} {
			if err := tx.Create(a).Error; err != nil {
				return fmt.Errorf("create author %s: %w", a.Name(), err)
			}
		}

		books := []*entities.Book{
			{Title: "The Name of the Wind (The Kingkiller Chronicle, #1)", AuthorID: rothfuss.ID, ISBN: "9781473211896", Summary: "I have stolen princesses back from sleeping barrow kings.", Genres: []entities.Genre{fantasy}},
			{Title: "The Wise Man's Fear (The Kingkiller Chronicle, #2)", AuthorID: rothfuss.ID, ISBN: "9788401352836", Summary: "Picking up the tale of Kvothe Kingkiller once again.", Genres: []entities.Genre{fantasy}},
			{Title: "Apes and Angels", AuthorID: asimov.ID, ISBN: "9780765379528", Summary: "Humankind headed out to the stars not for conquest.", Genres: []entities.Genre{scifi}},
		}
		for _, b := range books {
			if err := tx.Omit("Author", "Genres.*").Create(b).Error; err != nil {
				return fmt.Errorf("create book %s: %w", b.Title, err)
			}
		}

		instances := []*entities.BookInstance{
			{BookID: books[0].ID, Imprint: "London Gollancz, 2014.", Status: entities.StatusAvailable},
			{BookID: books[1].ID, Imprint: "Gollancz, 2011.", Status: entities.StatusLoaned, DueBack: date(2030, time.January, 1)},
			{BookID: books[2].ID, Imprint: "New York Tom Doherty Associates, 2016.", Status: entities.StatusMaintenance},
		}
		for _, bi := range instances {
			if err := tx.Omit(clause.Associations).Create(bi).Error; err != nil {
				return fmt.Errorf("create book instance: %w", err)
			}
		}

		log.Printf("Seeded %d genres, %d authors, %d books, %d copies", 3, 2, len(books), len(instances))
		return nil
	})
}
