package faculty

// Faculty is a faculty member. Email is the natural key: adding an existing
// email replaces that row in place.
type Faculty struct {
	ID         int64  `bson:"_id"`
	Name       string `bson:"name"`
	Department string `bson:"department"`
	Email      string `bson:"email"`
}

type FacultyForm struct {
	Name       string `form:"name"`
	Department string `form:"department"`
	Email      string `form:"email"`
}

// Overview is the data behind the home page.
type Overview struct {
	Faculties   []*Faculty
	Departments []string
	Count       int64
}
