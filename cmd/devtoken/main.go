// Command devtoken mints bearer tokens for local development. Production tokens come from the
// identity provider; both are signed with JWT_SECRET.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/HarishKumarG/BMS-project/internal/app"
	"github.com/HarishKumarG/BMS-project/internal/auth"
	"github.com/HarishKumarG/BMS-project/internal/domain"
)

func main() {
	err := app.LoadEnvFile(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		userID = flag.Int("user", 1, "user id claim")
		email  = flag.String("email", "", "email claim, booking mail is sent here")
		role   = flag.String("role", string(domain.RoleCustomer), "role claim (customer|manager)")
		ttl    = flag.Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
		secret = flag.String("jwt-secret", os.Getenv("JWT_SECRET"), "HS256 signing secret")
	)

	flag.Parse()

	p := domain.Principal{
		UserID: *userID,
		Email:  *email,
		Role:   domain.Role(*role),
	}

	switch {
	case *secret == "":
		err = errors.New("a signing secret is required, set JWT_SECRET or -jwt-secret")
	case p.UserID <= 0:
		err = errors.New("user id must be positive")
	case !p.Role.Valid():
		err = fmt.Errorf("unknown role %q", *role)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	token, err := auth.NewTokenVerifier(*secret).Issue(p, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(token)
}
