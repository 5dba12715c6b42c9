package storage

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTemplates returns the starter templates seeded into a fresh
// database. IDs are assigned at call time.
func DefaultTemplates() []Template {
	now := time.Now().UTC()
	return []Template{
		{
			ID:   uuid.New().String(),
			Name: "일반 업무 보고",
			Content: `## 오늘의 업무

### 완료한 업무
-

### 진행 중인 업무
-

### 내일 예정
-

### 이슈/특이사항
- `,
			CreatedAt: now,
		},
		{
			ID:   uuid.New().String(),
			Name: "개발 업무 보고",
			Content: `## 개발 업무 보고

### 완료
- [ ] 기능 개발:
- [ ] 버그 수정:
- [ ] 코드 리뷰:

### 진행 중
- [ ]

### 이슈
- 발생한 이슈:
- 해결 방안:

### 내일 계획
- `,
			CreatedAt: now,
		},
		{
			ID:   uuid.New().String(),
			Name: "간단 보고",
			Content: `[완료]


[진행중]


[예정]

`,
			CreatedAt: now,
		},
	}
}
