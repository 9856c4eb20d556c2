package llm

import "fmt"

// FirstChoice 安全地返回响应中的首个候选。
// 响应为 nil 或 choices 为空时返回错误。
func FirstChoice(resp *ChatResponse) (ChatChoice, error) {
	if resp == nil {
		return ChatChoice{}, fmt.Errorf("nil ChatResponse")
	}
	if len(resp.Choices) == 0 {
		return ChatChoice{}, fmt.Errorf("empty choices in ChatResponse (model returned no choices)")
	}
	return resp.Choices[0], nil
}

// MustFirstChoice 返回首个候选，失败时 panic。
// 仅在 choices 为空属于真正异常的场景使用。
func MustFirstChoice(resp *ChatResponse) ChatChoice {
	choice, err := FirstChoice(resp)
	if err != nil {
		panic(err)
	}
	return choice
}
