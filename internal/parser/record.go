package parser

// Record is the structured result of parsing one resume.
type Record struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
}

// Normalize returns a copy whose slices are non-nil, so the record always
// serializes every field.
func (r Record) Normalize() Record {
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Experience == nil {
		r.Experience = []string{}
	}
	return r
}
