package filter

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/maxpieter/eu-network-graph/pkg/errors"
)

// Mode selects which side of the network a request is about.
type Mode string

const (
	// ModeMEP keeps only organisation–MEP relationships.
	ModeMEP Mode = "mep"
	// ModeCommission keeps only organisation–commission-employee relationships.
	ModeCommission Mode = "commission"
	// ModeFull keeps everything.
	ModeFull Mode = "full"
)

// Options is the per-request filter configuration. It is immutable
// once parsed; the pipeline never writes to it.
type Options struct {
	Mode           Mode `query:"mode" validate:"required,oneof=mep commission full"`
	OrgMinDegree   int  `query:"org_min_degree" validate:"gte=0"`
	ActorMinDegree int  `query:"actor_min_degree" validate:"gte=0"`
	BipartiteKCore int  `query:"bipartite_k_core" validate:"gte=0"`
	MinEdgeWeight  int  `query:"min_edge_weight" validate:"gte=0"`
	KeepIsolates   bool `query:"keep_isolates"`
}

// Default returns the options applied when a request carries no
// filter parameters.
func Default() Options {
	return Options{
		Mode:           ModeFull,
		OrgMinDegree:   2,
		ActorMinDegree: 1,
		BipartiteKCore: 0,
		MinEdgeWeight:  1,
		KeepIsolates:   false,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report query parameter names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ParseOptions builds Options from request query parameters, falling
// back to defaults for absent ones. Malformed values and out-of-range
// thresholds are rejected with a validation error; nothing is ever
// silently coerced.
func ParseOptions(q url.Values) (Options, error) {
	opts := Default()

	if raw := q.Get("mode"); raw != "" {
		opts.Mode = Mode(raw)
	}

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"org_min_degree", &opts.OrgMinDegree},
		{"actor_min_degree", &opts.ActorMinDegree},
		{"bipartite_k_core", &opts.BipartiteKCore},
		{"min_edge_weight", &opts.MinEdgeWeight},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Options{}, apperrors.NewValidationf("%s must be an integer, got %q", p.name, raw)
		}
		*p.dst = n
	}

	if raw := q.Get("keep_isolates"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Options{}, apperrors.NewValidationf("keep_isolates must be a boolean, got %q", raw)
		}
		opts.KeepIsolates = b
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks the options against their constraints and returns a
// descriptive validation error for the first violation.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewInternal("filter options validation failed", err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "oneof", "required":
		return apperrors.NewValidationf("mode must be one of mep, commission or full, got %q", fe.Value())
	case "gte":
		return apperrors.NewValidationf("%s must be >= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	}
	return apperrors.NewValidationf("%s is invalid", fe.Field())
}
