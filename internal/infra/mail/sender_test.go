package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/fluent-crm/internal/infra/queue"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func newTestSender(t *testing.T, d dialer) *EmailSender {
	t.Helper()
	s, err := NewEmailSender(Config{Host: "localhost", Port: 1025, From: "hola@fluent.test"})
	require.NoError(t, err)
	s.dialer = d
	return s
}

func TestSendWelcomeRendersBothLanguages(t *testing.T) {
	d := &recordingDialer{}
	lead := queue.LeadCapturedPayload{ContactID: "c-1", Email: "ana@acme.io", FirstName: "Ana", Source: "Landing Page"}

	require.NoError(t, newTestSender(t, d).SendWelcome(context.Background(), lead))
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"ana@acme.io"}, m.GetHeader("To"))
	assert.Equal(t, []string{"hola@fluent.test"}, m.GetHeader("From"))

	var raw bytes.Buffer
	_, err := m.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "Hola Ana")
	assert.Contains(t, raw.String(), "Hi Ana")
}

func TestSendWelcomeEscapesFields(t *testing.T) {
	s := newTestSender(t, &recordingDialer{})
	m, err := s.compose(queue.LeadCapturedPayload{Email: "x@y.z", FirstName: "<b>Ana</b>"})
	require.NoError(t, err)

	var raw bytes.Buffer
	_, err = m.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "&lt;b&gt;Ana&lt;/b&gt;")
}

func TestSendWelcomeErrors(t *testing.T) {
	boom := errors.New("connection refused")
	err := newTestSender(t, &recordingDialer{err: boom}).SendWelcome(context.Background(), queue.LeadCapturedPayload{Email: "x@y.z"})
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &recordingDialer{}
	err = newTestSender(t, d).SendWelcome(ctx, queue.LeadCapturedPayload{Email: "x@y.z"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, d.sent)
}
