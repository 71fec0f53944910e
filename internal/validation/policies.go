package validation

var GenreCreatePolicy = Policy{
	Trim: []string{"name"},
	Rules: []Rule{
		{Field: "name", Check: "required", Message: "Genre name required"},
		{Field: "name", Check: "max=100", Message: "Genre name must not exceed 100 characters"},
	},
	Escape: []string{"name"},
}

var GenreUpdatePolicy = Policy{
	Trim: []string{"name"},
	Rules: []Rule{
		{Field: "name", Check: "required", Message: "Genre name must be specified"},
		{Field: "name", Check: "max=100", Message: "Genre name must not exceed 100 characters"},
	},
	Escape: []string{"name"},
}

var BookInstanceCreatePolicy = Policy{
	Trim: []string{"book", "imprint"},
	Rules: []Rule{
		{Field: "book", Check: "required", Message: "Book must be specified"},
		{Field: "imprint", Check: "required", Message: "Imprint must be specified"},
		{Field: "due_back", Check: "iso8601", Message: "Invalid date", Optional: true},
	},
	Escape: []string{"book", "imprint", "status", "due_back"},
}

var BookInstanceUpdatePolicy = Policy{
	Trim: []string{"book", "imprint"},
	Rules: []Rule{
		{Field: "book", Check: "required", Message: "Book name must be specified"},
		{Field: "imprint", Check: "required", Message: "Imprint must be provided"},
		{Field: "due_back", Check: "iso8601", Message: "Invalid date", Optional: true},
	},
	Escape: []string{"book", "imprint", "status", "due_back"},
}

// BookPolicy is shared by book create and update.
var BookPolicy = Policy{
	Trim: []string{"title", "author", "summary", "isbn"},
	Rules: []Rule{
		{Field: "title", Check: "required", Message: "Title must not be empty."},
		{Field: "author", Check: "required", Message: "Author must not be empty."},
		{Field: "summary", Check: "required", Message: "Summary must not be empty."},
		{Field: "isbn", Check: "required", Message: "ISBN must not be empty"},
	},
	Escape: []string{"title", "author", "summary", "isbn", "genre"},
}

// AuthorPolicy is shared by author create and update.
var AuthorPolicy = Policy{
	Trim: []string{"first_name", "family_name"},
	Rules: []Rule{
		{Field: "first_name", Check: "required", Message: "First name must be specified."},
		{Field: "first_name", Check: "alphanum", Message: "First name has non-alphanumeric characters.", Optional: true},
		{Field: "family_name", Check: "required", Message: "Family name must be specified."},
		{Field: "family_name", Check: "alphanum", Message: "Family name has non-alphanumeric characters.", Optional: true},
		{Field: "date_of_birth", Check: "iso8601", Message: "Invalid date of birth", Optional: true},
		{Field: "date_of_death", Check: "iso8601", Message: "Invalid date of death", Optional: true},
	},
	Escape: []string{"first_name", "family_name", "date_of_birth", "date_of_death"},
}
