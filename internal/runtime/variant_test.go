package runtime

import (
	"context"
	"testing"

	"github.com/aretw0/unshell/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	sync := func(yield domain.Yield, args ...any) (domain.Command, error) {
		return domain.Command{}, nil
	}
	async := func(ctx context.Context, yield domain.AsyncYield, args ...any) (domain.Command, error) {
		return domain.Command{}, nil
	}
	var nilAsync domain.AsyncProcedure

	tests := []struct {
		name   string
		script any
		want   Variant
	}{
		{"named sync", domain.Procedure(sync), VariantSync},
		{"unnamed sync", sync, VariantSync},
		{"named async", domain.AsyncProcedure(async), VariantAsync},
		{"unnamed async", async, VariantAsync},
		{"nil", nil, VariantInvalid},
		{"typed nil async", nilAsync, VariantInvalid},
		{"int", 42, VariantInvalid},
		{"other func", func() {}, VariantInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.script))
			assert.Equal(t, tt.want.String(), Classify(tt.script).String())
		})
	}
}

func TestStart_DoesNotRunBody(t *testing.T) {
	ran := false
	proc := domain.Procedure(func(yield domain.Yield, args ...any) (domain.Command, error) {
		ran = true
		return domain.Command{}, nil
	})

	stepper, variant, err := Start(context.Background(), proc)
	assert.NoError(t, err)
	assert.Equal(t, VariantSync, variant)
	assert.False(t, ran)

	step, err := stepper.Advance(context.Background(), domain.Result{})
	assert.NoError(t, err)
	assert.True(t, ran)
	assert.True(t, step.Done)
	assert.False(t, step.Command.Valid())

	// Advancing a finished procedure keeps reporting completion.
	step, err = stepper.Advance(context.Background(), domain.Result{})
	assert.NoError(t, err)
	assert.True(t, step.Done)
	stepper.Close()
}

func TestAsyncStepper_CloseBeforeStart(t *testing.T) {
	ran := make(chan struct{}, 1)
	proc := domain.AsyncProcedure(func(ctx context.Context, yield domain.AsyncYield, args ...any) (domain.Command, error) {
		ran <- struct{}{}
		return domain.Command{}, nil
	})

	stepper, variant, err := Start(context.Background(), proc)
	assert.NoError(t, err)
	assert.Equal(t, VariantAsync, variant)
	stepper.Close()

	select {
	case <-ran:
		t.Fatal("procedure body ran without being advanced")
	default:
	}
}
