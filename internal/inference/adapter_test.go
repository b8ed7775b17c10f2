package inference

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sha9506/HireRank/internal/llm"
)

// fakeGenerator replays scripted responses and errors in order.
type fakeGenerator struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, tier)
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

const validResponse = `{
	"matched_role": "backend developer",
	"role_confidence": "high",
	"skill_match": {
		"backend": ["Go", "Python"],
		"database": ["PostgreSQL"],
		"infra": ["Docker"]
	},
	"skill_missing": {
		"infra": ["Kubernetes"]
	}
}`

func sampleInput() Input {
	return Input{
		ResumeText:     "Built Go and Python services on PostgreSQL, deployed with Docker.",
		JobTitle:       "Backend Developer",
		JobDescription: "Backend role with container orchestration.",
		ExpectedSkills: []string{"Go", "Python", "PostgreSQL", "Docker", "Kubernetes"},
	}
}

func TestAnalyze_ValidResponse(t *testing.T) {
	gen := &fakeGenerator{responses: []string{validResponse}}
	adapter := NewAdapter(gen, Options{})

	result := adapter.Analyze(context.Background(), sampleInput())

	require.True(t, result.OK)
	assert.ElementsMatch(t, []string{"Go", "Python", "PostgreSQL", "Docker"}, result.Matched)
	assert.Equal(t, []string{"Kubernetes"}, result.Missing)
	assert.Equal(t, "backend developer", result.MatchedRole)
	assert.Equal(t, "high", result.Confidence)
}

func TestAnalyze_NormalizesInfraCategory(t *testing.T) {
	gen := &fakeGenerator{responses: []string{validResponse}}
	adapter := NewAdapter(gen, Options{})

	result := adapter.Analyze(context.Background(), sampleInput())

	require.True(t, result.OK)
	assert.Contains(t, result.MatchedCats, "infrastructure")
	assert.NotContains(t, result.MatchedCats, "infra")
	assert.Equal(t, []string{"Kubernetes"}, result.MissingCats["infrastructure"])
}

func TestAnalyze_MarkdownWrappedResponse(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"```json\n" + validResponse + "\n```"}}
	adapter := NewAdapter(gen, Options{})

	result := adapter.Analyze(context.Background(), sampleInput())

	assert.True(t, result.OK)
}

func TestAnalyze_MalformedJSONIsFullFailure(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"matched_role": "dev", "skill_match":`}}
	adapter := NewAdapter(gen, Options{})

	result := adapter.Analyze(context.Background(), sampleInput())

	assert.False(t, result.OK)
	require.Error(t, result.Err)
	var parseErr *ParseError
	assert.ErrorAs(t, result.Err, &parseErr)
	assert.Empty(t, result.Matched, "malformed response must not yield partial data")
}

func TestAnalyze_SchemaViolationIsFullFailure(t *testing.T) {
	// skill_match present but wrong shape
	gen := &fakeGenerator{responses: []string{`{
		"matched_role": "dev",
		"skill_match": ["Go"],
		"skill_missing": {}
	}`}}
	adapter := NewAdapter(gen, Options{})

	result := adapter.Analyze(context.Background(), sampleInput())

	assert.False(t, result.OK)
	var parseErr *ParseError
	assert.ErrorAs(t, result.Err, &parseErr)
}

func TestAnalyze_UnknownConfidenceDefaultsToLow(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{
		"matched_role": "dev",
		"role_confidence": "certain",
		"skill_match": {"backend": ["Go"]},
		"skill_missing": {}
	}`}}
	adapter := NewAdapter(gen, Options{})

	result := adapter.Analyze(context.Background(), sampleInput())

	require.True(t, result.OK)
	assert.Equal(t, "low", result.Confidence)
}

func TestAnalyze_RetriesOnceOnTransientError(t *testing.T) {
	gen := &fakeGenerator{
		errs:      []error{syscall.ECONNRESET, nil},
		responses: []string{"", validResponse},
	}
	adapter := NewAdapter(gen, Options{})

	result := adapter.Analyze(context.Background(), sampleInput())

	assert.True(t, result.OK)
	assert.Equal(t, 2, gen.calls)
}

func TestAnalyze_NoRetryOnNonTransientError(t *testing.T) {
	gen := &fakeGenerator{errs: []error{errors.New("invalid API key")}}
	adapter := NewAdapter(gen, Options{})

	result := adapter.Analyze(context.Background(), sampleInput())

	assert.False(t, result.OK)
	assert.Equal(t, 1, gen.calls, "non-transient errors must not be retried")
	var apiErr *APICallError
	assert.ErrorAs(t, result.Err, &apiErr)
}

func TestAnalyze_SingleRetryOnly(t *testing.T) {
	gen := &fakeGenerator{errs: []error{syscall.ECONNREFUSED, syscall.ECONNREFUSED}}
	adapter := NewAdapter(gen, Options{})

	result := adapter.Analyze(context.Background(), sampleInput())

	assert.False(t, result.OK)
	assert.Equal(t, 2, gen.calls, "exactly one retry")
}

func TestIsTransient(t *testing.T) {
	assert.False(t, isTransient(nil))
	assert.False(t, isTransient(context.Canceled))
	assert.False(t, isTransient(context.DeadlineExceeded))
	assert.False(t, isTransient(errors.New("bad request")))
	assert.True(t, isTransient(syscall.ECONNRESET))
	assert.True(t, isTransient(syscall.ECONNREFUSED))
	assert.True(t, isTransient(io.ErrUnexpectedEOF))

	var netErr net.Error = &net.DNSError{IsTimeout: true}
	assert.True(t, isTransient(netErr))
}
