package exec_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns stdout on success", func(t *testing.T) {
		t.Parallel()

		r := exec.Runner{Binary: writeScript(t, `echo "hello $1"`)}

		out, err := r.Run(context.Background(), "world")
		require.NoError(t, err)
		assert.Equal(t, "hello world\n", string(out))
	})

	t.Run("reports non-zero exit with stderr", func(t *testing.T) {
		t.Parallel()

		r := exec.Runner{Binary: writeScript(t, `echo "boom" >&2; exit 3`)}

		_, err := r.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, clipper.ESUBPROCESS, clipper.ErrorCode(err))
		assert.Contains(t, clipper.ErrorMessage(err), "exited with code 3")
		assert.Contains(t, clipper.ErrorMessage(err), "boom")
	})

	t.Run("reports missing binary", func(t *testing.T) {
		t.Parallel()

		r := exec.Runner{Binary: "/nonexistent/clipper-tool"}

		_, err := r.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, clipper.ESUBPROCESS, clipper.ErrorCode(err))
	})

	t.Run("kills process after timeout", func(t *testing.T) {
		t.Parallel()

		r := exec.Runner{
			Binary:  writeScript(t, `exec sleep 10`),
			Timeout: 100 * time.Millisecond,
		}

		start := time.Now()
		_, err := r.Run(context.Background())
		elapsed := time.Since(start)

		require.Error(t, err)
		assert.Equal(t, clipper.ESUBPROCESS, clipper.ErrorCode(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, elapsed, 5*time.Second)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		t.Parallel()

		r := exec.Runner{Binary: writeScript(t, `exec sleep 10`)}

		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(50*time.Millisecond, cancel)

		_, err := r.Run(ctx)
		require.Error(t, err)
		assert.Equal(t, clipper.ESUBPROCESS, clipper.ErrorCode(err))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
