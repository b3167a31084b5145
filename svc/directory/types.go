package directory

import "time"

type MemberCard struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Tokens   int    `json:"tokens"`
	LinkedIn string `json:"linkedin,omitempty"`
	Image    string `json:"image,omitempty"`
}

type Expert struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Website     string `json:"website"`
}

type Partner struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

type CommunityMember struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Image   string `json:"image"`
}

type Event struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	Location string    `json:"location"`
	URL      string    `json:"url"`
	CoverURL string    `json:"cover_url,omitempty"`
}

// Result is a full listing. Fallback is set when the items are built-in
// placeholder data rather than the live source.
type Result[T any] struct {
	Items    []T
	Fallback bool
}
