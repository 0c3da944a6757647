package xerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMaskKeepsSentinelAndCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: clients.email")
	err := fmt.Errorf("failed to create client: %w", Mask(ErrConflict, cause))

	if !errors.Is(err, ErrConflict) || !errors.Is(err, cause) {
		t.Fatalf("chain lost an error: %v", err)
	}
	if got := err.Error(); got != "failed to create client: "+ErrConflict.Error() {
		t.Fatalf("unexpected message %q", got)
	}
	if Cause(err) != cause {
		t.Fatalf("Cause returned %v", Cause(err))
	}
	if HTTPStatus(err) != http.StatusConflict {
		t.Fatalf("expected 409, got %d", HTTPStatus(err))
	}
	if Cause(ErrNotFound) != nil {
		t.Fatal("plain sentinel has no cause")
	}
}
