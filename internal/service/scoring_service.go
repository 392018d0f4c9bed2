package service

import (
	"strconv"
	"strings"

	"english_edu_backend/internal/model"
)

// ScoringService 把题目集和用户答案折算成得分，纯计算，无任何副作用
type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// Score 返回 (百分比得分, 答对题数)。
// 空题目集直接返回 (0, 0)。单题比对：按题目 id 的十进制字符串取答案，
// 两侧去掉首尾空白并小写后相等才算对；缺失或异常一律按答错处理，
// 不会让单题错误中断整次评分。
// 得分保留两位小数，0.5 向远离零进位（math.Round）
func (s *ScoringService) Score(questions []model.QuizQuestion, answers model.AnswerSet) (float64, int) {
	total := len(questions)
	if total == 0 {
		return 0, 0
	}

	correct := 0
	for _, q := range questions {
		submitted, ok := answers[strconv.Itoa(q.ID)]
		if !ok {
			continue
		}
		if normalizeAnswer(submitted) == normalizeAnswer(q.CorrectAnswer) {
			correct++
		}
	}

	score := model.Round2(float64(correct) / float64(total) * 100)
	return score, correct
}

// Accuracy 派生的正确率，不落库，由调用方按需计算
func (s *ScoringService) Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
