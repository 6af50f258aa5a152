package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/service"
)

// Error codes reported in the extensions of a GraphQL error.
const (
	CodeBadInput        = "BAD_USER_INPUT"
	CodeNotFound        = "NOT_FOUND"
	CodeForbidden       = "FORBIDDEN"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// resolverError satisfies gqlerrors.ExtendedError, so its code ends up in
// the formatted error.
type resolverError struct {
	msg      string
	code     string
	problems []string
}

func (e resolverError) Error() string {
	return e.msg
}

func (e resolverError) Extensions() map[string]any {
	ext := map[string]any{"code": e.code}
	if len(e.problems) > 0 {
		ext["problems"] = e.problems
	}
	return ext
}

func code(err error) string {
	switch {
	case errors.Is(err, service.ErrValidation):
		return CodeBadInput
	case errors.Is(err, service.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, service.ErrForbidden):
		return CodeForbidden
	case errors.Is(err, service.ErrAuth):
		return CodeUnauthenticated
	case errors.Is(err, service.ErrConflict):
		return CodeConflict
	}
	return CodeInternal
}

// resolve adapts a resolver so that its errors carry a code. Internal errors
// are logged and their message hidden from the client.
func resolve(op string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		out, err := fn(p)
		if err == nil {
			return out, nil
		}

		c := code(err)
		if c == CodeInternal {
			log.Errorf("graphql.%s: %+v", op, err)
			return nil, resolverError{msg: "internal server error", code: c}
		}

		log.Debugf("graphql.%s: %s", op, err)
		rerr := resolverError{msg: err.Error(), code: c}
		var serr *service.Error
		if errors.As(err, &serr) {
			rerr.problems = serr.Problems()
		}
		return nil, rerr
	}
}
