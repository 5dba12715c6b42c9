// Package keywords derives tag keywords from report text.
//
// The extraction is a stand-in for a real AI keyword service: a fixed
// trigger table catches known work vocabulary, and a randomized fill
// pass pads the result from a generic pool. It never fails; content
// without any trigger simply falls through to the fill pass.
package keywords

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// DefaultMaxKeywords caps the extracted set when callers pass no limit.
const DefaultMaxKeywords = 7

// keywordPool is the generic work-keyword pool drawn from (in random
// order) when trigger matches leave the result short.
var keywordPool = []string{
	"프로젝트 진행",
	"회의",
	"문서 작성",
	"코드 리뷰",
	"테스트",
	"배포",
	"버그 수정",
	"기획",
	"디자인",
	"개발",
	"분석",
	"보고서",
	"일정 관리",
	"협업",
	"피드백",
	"리서치",
	"데이터 분석",
	"UI/UX",
	"API 개발",
	"성능 최적화",
}

// priorityTriggers maps trigger substrings to the tag they produce.
// Order matters only for result ordering; matches collapse into a set.
var priorityTriggers = []struct {
	trigger string
	tag     string
}{
	{"회의", "회의"},
	{"미팅", "미팅"},
	{"개발", "개발"},
	{"테스트", "테스트"},
	{"배포", "배포"},
	{"기획", "기획"},
	{"디자인", "디자인"},
	{"분석", "분석"},
	{"리뷰", "리뷰"},
	{"버그", "버그 수정"},
	{"수정", "수정"},
	{"완료", "완료"},
	{"진행", "진행 중"},
	{"예정", "예정"},
	{"협업", "협업"},
	{"문서", "문서화"},
	{"정리", "정리"},
	{"검토", "검토"},
	{"확인", "확인"},
	{"준비", "준비"},
}

// Extractor produces keyword sets from free text. The random source and
// the simulated latency window are injectable so tests can run
// deterministically with zero delay.
type Extractor struct {
	mu       sync.Mutex
	rand     *rand.Rand
	minDelay time.Duration
	maxDelay time.Duration
}

// New creates an Extractor with a time-seeded random source and the
// default 500ms–1500ms simulated latency window.
func New() *Extractor {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())), 500*time.Millisecond, 1500*time.Millisecond)
}

// NewWithRand creates an Extractor with a caller-supplied random source
// and latency bounds. Pass zero bounds to disable the artificial delay.
func NewWithRand(r *rand.Rand, minDelay, maxDelay time.Duration) *Extractor {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Extractor{rand: r, minDelay: minDelay, maxDelay: maxDelay}
}

// Extract returns up to max keywords for content. Empty or
// whitespace-only content yields nil. Trigger matches come first in
// trigger-table order; the remainder is filled from the generic pool in
// random order until the pool is exhausted or the cap is reached.
func (e *Extractor) Extract(content string, max int) []string {
	if max <= 0 || strings.TrimSpace(content) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var result []string
	for _, pt := range priorityTriggers {
		if !strings.Contains(content, pt.trigger) || seen[pt.tag] {
			continue
		}
		seen[pt.tag] = true
		result = append(result, pt.tag)
	}

	pool := make([]string, len(keywordPool))
	copy(pool, keywordPool)
	e.mu.Lock()
	e.rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	e.mu.Unlock()

	for _, kw := range pool {
		if len(result) >= max {
			break
		}
		if seen[kw] {
			continue
		}
		seen[kw] = true
		result = append(result, kw)
	}

	if len(result) > max {
		result = result[:max]
	}
	return result
}

// ExtractAsync behaves like Extract after a randomized delay emulating
// the latency of a real extraction service. The wait is cancelable; the
// only possible error is the context's.
func (e *Extractor) ExtractAsync(ctx context.Context, content string, max int) ([]string, error) {
	delay := e.minDelay
	if span := e.maxDelay - e.minDelay; span > 0 {
		e.mu.Lock()
		delay += time.Duration(e.rand.Int63n(int64(span)))
		e.mu.Unlock()
	}
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return e.Extract(content, max), nil
}
