package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/mock"
	"github.com/fwojciec/clipper/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strategy(name string, out clipper.Outcome, calls *[]string) *mock.Strategy {
	return &mock.Strategy{
		NameFn: func() string { return name },
		AttemptFn: func(_ context.Context, _ string) clipper.Outcome {
			*calls = append(*calls, name)
			return out
		},
	}
}

func TestChain_Run(t *testing.T) {
	t.Parallel()

	t.Run("stops at first success", func(t *testing.T) {
		t.Parallel()

		var calls []string
		chain := pipeline.NewChain(nil,
			strategy("first", clipper.Succeeded("one"), &calls),
			strategy("second", clipper.Succeeded("two"), &calls),
		)

		name, out := chain.Run(context.Background(), "<html>")

		assert.Equal(t, "first", name)
		assert.True(t, out.OK)
		assert.Equal(t, "one", out.Value)
		assert.Equal(t, []string{"first"}, calls)
	})

	t.Run("falls back in order", func(t *testing.T) {
		t.Parallel()

		var calls []string
		chain := pipeline.NewChain(nil,
			strategy("first", clipper.Failed(clipper.Errorf(clipper.ESUBPROCESS, "boom")), &calls),
			strategy("second", clipper.Succeeded("two"), &calls),
		)

		name, out := chain.Run(context.Background(), "<html>")

		assert.Equal(t, "second", name)
		assert.Equal(t, "two", out.Value)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("returns last failure when all fail", func(t *testing.T) {
		t.Parallel()

		var calls []string
		chain := pipeline.NewChain(nil,
			strategy("first", clipper.Failed(clipper.Errorf(clipper.ESUBPROCESS, "boom")), &calls),
			strategy("second", clipper.Failed(clipper.Errorf(clipper.ECONTENT, "empty")), &calls),
		)

		name, out := chain.Run(context.Background(), "<html>")

		assert.Empty(t, name)
		assert.False(t, out.OK)
		assert.Equal(t, clipper.ECONTENT, out.Code)
	})

	t.Run("empty chain fails with ECONTENT", func(t *testing.T) {
		t.Parallel()

		_, out := pipeline.NewChain(nil).Run(context.Background(), "<html>")

		assert.False(t, out.OK)
		assert.Equal(t, clipper.ECONTENT, out.Code)
	})

	t.Run("recovers from panicking strategy", func(t *testing.T) {
		t.Parallel()

		var calls []string
		chain := pipeline.NewChain(nil,
			&mock.Strategy{
				NameFn:    func() string { return "broken" },
				AttemptFn: func(context.Context, string) clipper.Outcome { panic("nil map") },
			},
			strategy("fallback", clipper.Succeeded("ok"), &calls),
		)

		name, out := chain.Run(context.Background(), "<html>")

		assert.Equal(t, "fallback", name)
		assert.True(t, out.OK)
	})

	t.Run("stops when context is done", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var calls []string
		chain := pipeline.NewChain(nil, strategy("first", clipper.Succeeded("one"), &calls))

		_, out := chain.Run(ctx, "<html>")

		assert.False(t, out.OK)
		assert.ErrorIs(t, out.Err, context.Canceled)
		assert.Empty(t, calls)
	})
}

func TestArticleStrategy_Attempt(t *testing.T) {
	t.Parallel()

	extractor := func(text string, err error) *mock.ArticleExtractor {
		return &mock.ArticleExtractor{
			ExtractArticleFn: func(context.Context, string) (string, error) { return text, err },
		}
	}

	t.Run("accepts output at minimum length", func(t *testing.T) {
		t.Parallel()

		s := pipeline.NewArticleStrategy("article", extractor(strings.Repeat("a", 100), nil), 100)

		out := s.Attempt(context.Background(), "<html>")

		require.True(t, out.OK)
		assert.Len(t, out.Value, 100)
	})

	t.Run("rejects short output with ECONTENT", func(t *testing.T) {
		t.Parallel()

		s := pipeline.NewArticleStrategy("article", extractor(strings.Repeat("a", 99), nil), 100)

		out := s.Attempt(context.Background(), "<html>")

		assert.False(t, out.OK)
		assert.Equal(t, clipper.ECONTENT, out.Code)
	})

	t.Run("measures length after normalizing whitespace", func(t *testing.T) {
		t.Parallel()

		padded := "   " + strings.Repeat("a", 60) + "\n\n\n\n\n" + "   "
		s := pipeline.NewArticleStrategy("article", extractor(padded, nil), 62)

		out := s.Attempt(context.Background(), "<html>")

		assert.False(t, out.OK)
	})

	t.Run("passes extractor errors through", func(t *testing.T) {
		t.Parallel()

		s := pipeline.NewArticleStrategy("article", extractor("", clipper.Errorf(clipper.ESUBPROCESS, "not installed")), 1)

		out := s.Attempt(context.Background(), "<html>")

		assert.False(t, out.OK)
		assert.Equal(t, clipper.ESUBPROCESS, out.Code)
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		t.Parallel()

		s := pipeline.NewArticleStrategy("article", extractor("", errors.New("boom")), 1)

		out := s.Attempt(context.Background(), "<html>")

		assert.Equal(t, clipper.EINTERNAL, out.Code)
		assert.Equal(t, "article", s.Name())
	})
}
