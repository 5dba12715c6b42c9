package keywords

import (
	"context"
	"math/rand"
	"slices"
	"testing"
	"time"
)

func newTestExtractor(seed int64) *Extractor {
	return NewWithRand(rand.New(rand.NewSource(seed)), 0, 0)
}

func TestExtract_EmptyContent(t *testing.T) {
	e := newTestExtractor(1)
	if got := e.Extract("", 7); got != nil {
		t.Errorf("Extract(empty) = %v, want nil", got)
	}
	if got := e.Extract("   \n\t ", 7); got != nil {
		t.Errorf("Extract(whitespace) = %v, want nil", got)
	}
}

func TestExtract_ZeroMax(t *testing.T) {
	e := newTestExtractor(1)
	if got := e.Extract("회의 준비 완료", 0); got != nil {
		t.Errorf("Extract(max=0) = %v, want nil", got)
	}
}

func TestExtract_TriggerMapping(t *testing.T) {
	e := newTestExtractor(1)

	got := e.Extract("버그", 1)
	if len(got) != 1 || got[0] != "버그 수정" {
		t.Errorf("Extract(버그) = %v, want [버그 수정]", got)
	}

	got = e.Extract("진행", 1)
	if len(got) != 1 || got[0] != "진행 중" {
		t.Errorf("Extract(진행) = %v, want [진행 중]", got)
	}

	got = e.Extract("문서", 1)
	if len(got) != 1 || got[0] != "문서화" {
		t.Errorf("Extract(문서) = %v, want [문서화]", got)
	}
}

func TestExtract_TriggersBeforePoolFill(t *testing.T) {
	e := newTestExtractor(1)
	content := "오늘 버그 수정하고 배포 완료"

	got := e.Extract(content, 7)
	if len(got) != 7 {
		t.Fatalf("got %d keywords, want 7", len(got))
	}
	// Triggers matched by this content, in table order: 배포 comes before
	// 버그 수정, which comes before 수정 and 완료.
	for _, want := range []string{"배포", "버그 수정", "수정", "완료"} {
		if !slices.Contains(got, want) {
			t.Errorf("result %v missing trigger tag %q", got, want)
		}
	}
	if got[0] != "배포" {
		t.Errorf("got[0] = %q, want trigger tags first (배포)", got[0])
	}
}

func TestExtract_CapRespected(t *testing.T) {
	e := newTestExtractor(1)
	content := "회의 미팅 개발 테스트 배포 기획 디자인 분석 리뷰 버그"

	got := e.Extract(content, 3)
	if len(got) != 3 {
		t.Errorf("got %d keywords, want 3", len(got))
	}
}

func TestExtract_NoDuplicates(t *testing.T) {
	e := newTestExtractor(42)
	// 회의 is both a trigger tag and a pool entry.
	got := e.Extract("회의 일정 공유했습니다", 20)

	seen := make(map[string]int)
	for _, kw := range got {
		seen[kw]++
	}
	for kw, n := range seen {
		if n > 1 {
			t.Errorf("keyword %q appears %d times", kw, n)
		}
	}
}

func TestExtract_DeterministicWithSeed(t *testing.T) {
	a := newTestExtractor(7).Extract("일반 업무 내용입니다", 5)
	b := newTestExtractor(7).Extract("일반 업무 내용입니다", 5)
	if !slices.Equal(a, b) {
		t.Errorf("same seed produced different results: %v vs %v", a, b)
	}
}

func TestExtractAsync_ZeroDelay(t *testing.T) {
	e := newTestExtractor(1)
	got, err := e.ExtractAsync(context.Background(), "버그 잡는 중", 7)
	if err != nil {
		t.Fatalf("ExtractAsync: %v", err)
	}
	if !slices.Contains(got, "버그 수정") {
		t.Errorf("result %v missing 버그 수정", got)
	}
}

func TestExtractAsync_Canceled(t *testing.T) {
	e := NewWithRand(rand.New(rand.NewSource(1)), time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := e.ExtractAsync(ctx, "회의 준비", 7)
	if err == nil {
		t.Fatal("ExtractAsync with canceled ctx = nil error")
	}
	if got != nil {
		t.Errorf("got %v, want nil on cancellation", got)
	}
}
