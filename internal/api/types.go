package api

// Mailbox represents an address/display-name pair on the wire.
type Mailbox struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Body holds the plain-text and HTML renderings of a message body.
type Body struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// Attachment represents an attachment entry on the wire.
// Present reports whether the attachment content is retrievable;
// metadata may still be listed for attachments whose content is gone.
type Attachment struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Present  bool   `json:"present"`
}

// Message represents a message object as returned by the mail endpoints.
// Date is kept as the raw ISO-8601 string; parsing happens in the public
// package so a malformed timestamp surfaces as a decode error there.
type Message struct {
	ID          string            `json:"id"`
	From        Mailbox           `json:"from"`
	To          Mailbox           `json:"to"`
	Subject     string            `json:"subject"`
	Date        string            `json:"date"`
	Body        Body              `json:"body"`
	Headers     map[string]string `json:"headers"`
	Attachments []Attachment      `json:"attachments"`
}

// Session represents the POST /api/v2/session response.
// Expires is milliseconds since the Unix epoch.
type Session struct {
	Expires  int64  `json:"expires"`
	Username string `json:"username"`
	Domain   string `json:"domain"`
}

// sessionRequest is the body for session create/delete calls.
type sessionRequest struct {
	Username string `json:"username"`
	Domain   string `json:"domain"`
}
