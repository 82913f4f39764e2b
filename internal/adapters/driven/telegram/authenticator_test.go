package telegram

import (
	"context"
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
)

// scriptedPrompter implements driven.Prompter with fixed answers.
type scriptedPrompter struct {
	phone, code, password string
	delivery              string
}

func (p *scriptedPrompter) Phone(context.Context) (string, error) { return p.phone, nil }

func (p *scriptedPrompter) Code(_ context.Context, delivery string) (string, error) {
	p.delivery = delivery
	return p.code, nil
}

func (p *scriptedPrompter) Password(context.Context) (string, error) { return p.password, nil }

func TestPromptAuthenticator_Answers(t *testing.T) {
	prompter := &scriptedPrompter{phone: "+84 987-654-321", code: " 12345\n", password: "hunter2"}
	a := promptAuthenticator{prompter: prompter}
	ctx := context.Background()

	phone, err := a.Phone(ctx)
	require.NoError(t, err)
	assert.Equal(t, "+84987654321", phone)

	code, err := a.Code(ctx, &tg.AuthSentCode{Type: &tg.AuthSentCodeTypeSMS{Length: 5}})
	require.NoError(t, err)
	assert.Equal(t, "12345", code)
	assert.Equal(t, "SMS", prompter.delivery)

	password, err := a.Password(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", password)
}

func TestPromptAuthenticator_SignUpRefused(t *testing.T) {
	a := promptAuthenticator{prompter: &scriptedPrompter{}}

	_, err := a.SignUp(context.Background())

	assert.ErrorIs(t, err, domain.ErrAccountNotRegistered)
}

func TestPromptAuthenticator_AcceptsTerms(t *testing.T) {
	a := promptAuthenticator{prompter: &scriptedPrompter{}}

	err := a.AcceptTermsOfService(context.Background(), tg.HelpTermsOfService{})

	assert.NoError(t, err)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"+84987654321", "+84987654321"},
		{" +1 (555) 010-9999 ", "+15550109999"},
		{"447700900123", "447700900123"},
		{"12+34", "1234"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizePhone(tt.input))
		})
	}
}

func TestCodeDelivery(t *testing.T) {
	tests := []struct {
		name     string
		sentCode *tg.AuthSentCode
		expected string
	}{
		{"App", &tg.AuthSentCode{Type: &tg.AuthSentCodeTypeApp{}}, "Telegram app"},
		{"SMS", &tg.AuthSentCode{Type: &tg.AuthSentCodeTypeSMS{}}, "SMS"},
		{"Call", &tg.AuthSentCode{Type: &tg.AuthSentCodeTypeCall{}}, "phone call"},
		{"Nil", nil, "Telegram"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, codeDelivery(tt.sentCode))
		})
	}
}
