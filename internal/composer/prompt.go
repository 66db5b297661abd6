package composer

import (
	"fmt"
	"strings"
)

func buildCombinePrompt(text string) string {
	return fmt.Sprintf(`Describe the attached image in text, translate the user's input into English, and combine them into a prompt for DALL-E to generate an image.
Print ONLY the combined prompt as a string.

Example:
`+"```"+`
1. Image description: **attached image**
2. User input (in English): 배경 그림에 산을 추가해줘.
3. Combined prompt: A red lighthouse standing against the backdrop of the sea under a blue sky. Please add mountains in the background.
`+"```"+`
`+"```"+`
1. Image description: **attached image**
2. User input (in English): 하늘을 나는 미래형 비행 자동차를 그려줘.
3. Combined prompt: A busy city street at night with bright neon signs and a crowd of people walking. Please add a futuristic flying car in the sky.
`+"```"+`
===

User input:
1. Image description: **attached image**
2. User input (in English): %s.
3. Combined prompt: `, text)
}

// cleanPrompt strips code fences and an echoed "Combined prompt:" label.
func cleanPrompt(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if idx := strings.LastIndex(s, "Combined prompt:"); idx != -1 {
		s = s[idx+len("Combined prompt:"):]
	}
	return strings.TrimSpace(s)
}
