package fcm

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound,omitempty"`
}

type sendRequest struct {
	To           string       `json:"to"`
	Notification notification `json:"notification"`
	Priority     string       `json:"priority,omitempty"`
}

type sendResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}
