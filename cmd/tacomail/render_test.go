package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tacomail "github.com/tacomail/client-go"
)

func sampleEmail() *tacomail.Email {
	return &tacomail.Email{
		ID:      "m1",
		From:    tacomail.Mailbox{Address: "sender@example.com", Name: "Sender"},
		To:      tacomail.Mailbox{Address: "alice@tacomail.de"},
		Subject: "Hello",
		Date:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Body:    tacomail.EmailBody{Text: "ping", HTML: "<p>ping</p>"},
		Attachments: []tacomail.Attachment{
			{ID: "a1", FileName: "report.pdf", Present: true},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"rich", "plain", "json"} {
		f, err := parseFormat(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(f))
	}

	_, err := parseFormat("yaml")
	assert.Error(t, err)
}

func TestRenderer_EmailList_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := &renderer{out: &buf, format: formatPlain}

	require.NoError(t, r.emailList("alice@tacomail.de", []*tacomail.Email{sampleEmail()}))

	assert.Equal(t, "m1\tsender@example.com\tHello\t2024-01-15T10:30:00Z\n", buf.String())
}

func TestRenderer_EmailList_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := &renderer{out: &buf, format: formatJSON}

	require.NoError(t, r.emailList("alice@tacomail.de", []*tacomail.Email{sampleEmail()}))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "m1", decoded[0]["id"])
	assert.Equal(t, "Hello", decoded[0]["subject"])
	// List rendering omits bodies.
	assert.NotContains(t, decoded[0], "body")
}

func TestRenderer_EmailList_RichEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := &renderer{out: &buf, format: formatRich}

	require.NoError(t, r.emailList("alice@tacomail.de", nil))
	assert.Contains(t, buf.String(), "No emails found for alice@tacomail.de")
}

func TestRenderer_Email_JSONIncludesBody(t *testing.T) {
	var buf bytes.Buffer
	r := &renderer{out: &buf, format: formatJSON}

	require.NoError(t, r.email(sampleEmail(), true))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	body, ok := decoded["body"].(map[string]interface{})
	require.True(t, ok, "body should be present")
	assert.Equal(t, "ping", body["text"])
}

func TestRenderer_Email_RichPrintBody(t *testing.T) {
	var buf bytes.Buffer
	r := &renderer{out: &buf, format: formatRich}

	require.NoError(t, r.email(sampleEmail(), true))

	out := buf.String()
	assert.Contains(t, out, "Subject: Hello")
	assert.Contains(t, out, "From:    Sender <sender@example.com>")
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "ping")
}

func TestRenderer_Session_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := &renderer{out: &buf, format: formatPlain}

	expires := time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC)
	require.NoError(t, r.session(&tacomail.Session{
		Username: "alice", Domain: "tacomail.de", Expires: expires,
	}))

	assert.Equal(t, "alice@tacomail.de\t2024-01-15T11:30:00Z\n", buf.String())
}

func TestRenderer_Message_SuppressedForJSON(t *testing.T) {
	var buf bytes.Buffer
	r := &renderer{out: &buf, format: formatJSON}

	r.message("noise %d", 42)
	assert.Empty(t, buf.String())
}

func TestRenderer_Domains_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := &renderer{out: &buf, format: formatPlain}

	require.NoError(t, r.domains([]string{"tacomail.de", "burrito.example"}))
	assert.Equal(t, "tacomail.de\nburrito.example\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "0123456...", truncate("0123456789abc", 10))
}
