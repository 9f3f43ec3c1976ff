package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/angelmondragon/bikewish/internal/app"
	"github.com/angelmondragon/bikewish/internal/items"
	"github.com/angelmondragon/bikewish/pkg/config"
	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
	"github.com/angelmondragon/bikewish/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemsAdd(wishlistID uuid.UUID, productID int64) items.AddItemRequest {
	return items.AddItemRequest{WishlistID: wishlistID, ProductID: productID, Quantity: 1}
}

func promptConfig() config.Config {
	return config.Config{
		DB: config.DBConfig{Driver: config.DriverPostgres, Host: "localhost", Port: 5432, User: "postgres", Name: "bikewish"},
		Prompt: config.PromptConfig{
			PasswordAttempts: 3,
			ConnectAttempts:  3,
			CancelWord:       "exit",
		},
	}
}

type fakeOpener struct {
	passwords []string
	failures  int
	err       error
	session   *app.Session
}

func (f *fakeOpener) open(_ context.Context, cfg *config.Config, _ *logger.Logger) (*app.Session, error) {
	f.passwords = append(f.passwords, cfg.DB.Password)
	if f.err != nil {
		return nil, f.err
	}
	if f.failures > 0 {
		f.failures--
		return nil, pkgerrors.New(pkgerrors.CodeConnection, "database unreachable or credentials rejected")
	}
	return f.session, nil
}

func TestConnectPromptsUntilPasswordGiven(t *testing.T) {
	session := newSession(t)
	opener := &fakeOpener{session: session}
	prompter := &scriptedPrompter{passwords: []string{"", "  ", "secret"}}
	var out bytes.Buffer

	got, err := Connector{Prompter: prompter, Out: &out, Open: opener.open}.Connect(context.Background(), promptConfig())
	require.NoError(t, err)
	assert.Same(t, session, got)
	assert.Equal(t, []string{"secret"}, opener.passwords)
	assert.Contains(t, out.String(), "Password cannot be empty.")
}

func TestConnectGivesUpAfterEmptyPasswords(t *testing.T) {
	opener := &fakeOpener{}
	prompter := &scriptedPrompter{passwords: []string{"", "", "", "late"}}

	_, err := Connector{Prompter: prompter, Out: &bytes.Buffer{}, Open: opener.open}.Connect(context.Background(), promptConfig())
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Empty(t, opener.passwords)
}

func TestConnectCancelWord(t *testing.T) {
	opener := &fakeOpener{}
	prompter := &scriptedPrompter{passwords: []string{"Exit"}}

	_, err := Connector{Prompter: prompter, Out: &bytes.Buffer{}, Open: opener.open}.Connect(context.Background(), promptConfig())
	assert.Equal(t, pkgerrors.CodeCancelled, pkgerrors.CodeOf(err))
	assert.Empty(t, opener.passwords)
}

func TestConnectPasswordMatchingDefaultCancelWord(t *testing.T) {
	session := newSession(t)
	opener := &fakeOpener{session: session}
	prompter := &scriptedPrompter{passwords: []string{"exit"}}
	cfg := promptConfig()
	cfg.Prompt.CancelWord = "quit"

	got, err := Connector{Prompter: prompter, Out: &bytes.Buffer{}, Open: opener.open}.Connect(context.Background(), cfg)
	require.NoError(t, err)
	assert.Same(t, session, got)
	assert.Equal(t, []string{"exit"}, opener.passwords)
}

func TestConnectRetriesConnectionFailures(t *testing.T) {
	session := newSession(t)
	opener := &fakeOpener{failures: 2, session: session}
	prompter := &scriptedPrompter{passwords: []string{"wrong", "again", "right"}}
	var out bytes.Buffer

	got, err := Connector{Prompter: prompter, Out: &out, Open: opener.open}.Connect(context.Background(), promptConfig())
	require.NoError(t, err)
	assert.Same(t, session, got)
	assert.Equal(t, []string{"wrong", "again", "right"}, opener.passwords)
	assert.Contains(t, out.String(), "attempt 2 of 3")
}

func TestConnectStopsAfterAllAttempts(t *testing.T) {
	opener := &fakeOpener{failures: 5}
	prompter := &scriptedPrompter{passwords: []string{"a", "b", "c", "d"}}

	_, err := Connector{Prompter: prompter, Out: &bytes.Buffer{}, Open: opener.open}.Connect(context.Background(), promptConfig())
	assert.Equal(t, pkgerrors.CodeConnection, pkgerrors.CodeOf(err))
	assert.Len(t, opener.passwords, 3)
}

func TestConnectWithConfiguredPasswordDoesNotPrompt(t *testing.T) {
	session := newSession(t)
	opener := &fakeOpener{failures: 1, session: session}
	prompter := &scriptedPrompter{}
	cfg := promptConfig()
	cfg.DB.Password = "from-env"

	got, err := Connector{Prompter: prompter, Out: &bytes.Buffer{}, Open: opener.open}.Connect(context.Background(), cfg)
	require.NoError(t, err)
	assert.Same(t, session, got)
	assert.Empty(t, prompter.prompts)
	assert.Equal(t, []string{"from-env", "from-env"}, opener.passwords)
}

func TestConnectReturnsConfigErrorsImmediately(t *testing.T) {
	opener := &fakeOpener{err: pkgerrors.New(pkgerrors.CodeValidation, "database configuration incomplete")}
	cfg := promptConfig()
	cfg.DB.Password = "set"

	_, err := Connector{Prompter: &scriptedPrompter{}, Out: &bytes.Buffer{}, Open: opener.open}.Connect(context.Background(), cfg)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Len(t, opener.passwords, 1)
}
