package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/unshell/pkg/domain"
	"github.com/aretw0/unshell/pkg/ports"
)

// Variant is the kind of procedure a script value is.
type Variant int

const (
	VariantInvalid Variant = iota
	VariantSync
	VariantAsync
)

func (v Variant) String() string {
	switch v {
	case VariantSync:
		return "sync"
	case VariantAsync:
		return "async"
	default:
		return "invalid"
	}
}

// Classify inspects the script factory without calling it.
// Unnamed function values with the procedure signatures are accepted too,
// since symbols looked up from plugins carry no named type.
func Classify(script any) Variant {
	if _, ok := asProcedure(script); ok {
		return VariantSync
	}
	if _, ok := asAsyncProcedure(script); ok {
		return VariantAsync
	}
	return VariantInvalid
}

// Start classifies script and instantiates it with args.
// The procedure body does not run before the first Advance.
func Start(ctx context.Context, script any, args ...any) (ports.Stepper, Variant, error) {
	if proc, ok := asProcedure(script); ok {
		return newSyncStepper(proc, args), VariantSync, nil
	}
	if proc, ok := asAsyncProcedure(script); ok {
		return newAsyncStepper(ctx, proc, args), VariantAsync, nil
	}
	return nil, VariantInvalid, fmt.Errorf("%w: %T is not a procedure", domain.ErrInvalidScript, script)
}

func asProcedure(script any) (domain.Procedure, bool) {
	switch fn := script.(type) {
	case domain.Procedure:
		return fn, fn != nil
	case func(domain.Yield, ...any) (domain.Command, error):
		return fn, fn != nil
	}
	return nil, false
}

func asAsyncProcedure(script any) (domain.AsyncProcedure, bool) {
	switch fn := script.(type) {
	case domain.AsyncProcedure:
		return fn, fn != nil
	case func(context.Context, domain.AsyncYield, ...any) (domain.Command, error):
		return fn, fn != nil
	}
	return nil, false
}
