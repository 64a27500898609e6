package client

// SaveNoteRequest is the upsert payload for POST /notes. ID empty means
// create; the server assigns the id and timestamps either way.
type SaveNoteRequest struct {
	ID       string   `json:"id,omitempty"`
	UserID   string   `json:"userId"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Starred  bool     `json:"starred"`
	Archived bool     `json:"archived"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
