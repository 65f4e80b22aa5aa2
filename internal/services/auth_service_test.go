package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"atelier/internal/apperr"
	"atelier/internal/repos"
	"atelier/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func authSvc(db *sqlx.DB) *services.AuthService {
	return &services.AuthService{
		Users:      repos.NewUserRepo(db),
		Secret:     []byte("test-secret"),
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := authSvc(memdb(t))

	u, err := svc.Register("Ana", "ana@example.com", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if u.IsAdmin {
		t.Fatal("registered user must not be admin")
	}
	if u.Hash == "" || u.Hash == "Passw0rd!" {
		t.Fatalf("password must be stored hashed, got %q", u.Hash)
	}

	_, err = svc.Register("Ana Again", "ana@example.com", "Passw0rd!")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestLoginClaimsRoundTrip(t *testing.T) {
	svc := authSvc(memdb(t))

	u, err := svc.Register("Ana", "ana@example.com", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}

	pair, err := svc.Login("ana@example.com", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := svc.ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID() != u.ID {
		t.Fatalf("claims user id %d != %d", claims.UserID(), u.ID)
	}
	if claims.Admin {
		t.Fatal("common user token must not carry admin")
	}

	// seeded admin carries the admin flag
	adminPair, err := svc.Login("admin@atelier.test", "ChangeMe1!")
	if err != nil {
		t.Fatal(err)
	}
	adminClaims, err := svc.ParseAccess(adminPair.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if !adminClaims.Admin {
		t.Fatal("admin token must carry admin flag")
	}
}

func TestLoginFailureIsIndistinct(t *testing.T) {
	svc := authSvc(memdb(t))
	if _, err := svc.Register("Ana", "ana@example.com", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}

	_, errUnknown := svc.Login("nobody@example.com", "Passw0rd!")
	_, errBadPass := svc.Login("ana@example.com", "wrong-pass1A")
	if !errors.Is(errUnknown, apperr.ErrUnauthenticated) || !errors.Is(errBadPass, apperr.ErrUnauthenticated) {
		t.Fatalf("both failures must be unauthenticated, got %v / %v", errUnknown, errBadPass)
	}
	if errUnknown.Error() != errBadPass.Error() {
		t.Fatalf("failure messages must not reveal which part failed: %q vs %q",
			errUnknown.Error(), errBadPass.Error())
	}
}

func TestRefreshTokenRules(t *testing.T) {
	svc := authSvc(memdb(t))
	if _, err := svc.Register("Ana", "ana@example.com", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	pair, err := svc.Login("ana@example.com", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}

	// happy path mints a fresh access token
	out, err := svc.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ParseAccess(out.AccessToken); err != nil {
		t.Fatalf("refreshed access token invalid: %v", err)
	}

	// an access token is not accepted in place of a refresh token
	if _, err := svc.Refresh(pair.AccessToken); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("want unauthenticated for access-as-refresh, got %v", err)
	}

	// tampering invalidates the signature
	tampered := pair.RefreshToken[:len(pair.RefreshToken)-2] + "xx"
	if _, err := svc.Refresh(tampered); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("want unauthenticated for tampered token, got %v", err)
	}

	// empty token
	if _, err := svc.Refresh(""); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("want unauthenticated for empty token, got %v", err)
	}

	// a refresh token never passes the access gate
	if _, err := svc.ParseAccess(pair.RefreshToken); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("want unauthenticated for refresh-as-access, got %v", err)
	}
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	db := memdb(t)
	svc := authSvc(db)
	svc.AccessTTL = -time.Minute // issue already-expired tokens

	if _, err := svc.Register("Ana", "ana@example.com", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	pair, err := svc.Login("ana@example.com", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ParseAccess(pair.AccessToken); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("want unauthenticated for expired token, got %v", err)
	}
}
