package request

// CreateQuestionRequest 提交前置问卷请求
// 使用位置:
//   - internal/handler/support_handler.go: CreateQuestion
//   - internal/service/support/service.go: CreateFromQuestion
type CreateQuestionRequest struct {
	MemberId       string `json:"member_id" binding:"required"`
	QuestionType   string `json:"question_type" binding:"required"`
	QuestionDetail string `json:"question_detail"`
}
