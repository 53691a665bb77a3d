package reqrestests

// User is a user record as returned by the /api/users endpoints.
type User struct {
	ID        int    `json:"id" expose:"true"`
	Email     string `json:"email" expose:"true"`
	FirstName string `json:"first_name" expose:"true"`
	LastName  string `json:"last_name" expose:"true"`
	Avatar    string `json:"avatar" expose:"true"`
}

// UserPage is one page of the user list. The support block is left out of comparisons because
// the service changes its text from time to time.
type UserPage struct {
	Page       int      `json:"page" expose:"true"`
	PerPage    int      `json:"per_page" expose:"true"`
	Total      int      `json:"total" expose:"true"`
	TotalPages int      `json:"total_pages" expose:"true"`
	Data       []User   `json:"data" expose:"true"`
	Support    *Support `json:"support,omitempty"`
}

type Support struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// UserInput is the request body for creating or updating a user.
type UserInput struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credentials is the request body for /api/register and /api/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}
