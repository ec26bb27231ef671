package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"boardgame-recommender/internal/domain"
)

// Sentinels rendered for absent context metadata. Every field is always
// printed so the prompt shape stays stable regardless of index quality.
const (
	unknownName        = "未知"
	unknownDescription = "无"
	unknownNumber      = "?"
)

// emptyContextNotice replaces the context block when retrieval found
// nothing, steering the model to its general knowledge instead.
const emptyContextNotice = "数据库中没有找到与用户偏好紧密匹配的桌游。请根据普遍知识进行推荐。"

// systemPrompt fixes the assistant role for every recommendation request.
const systemPrompt = "你是一位资深的桌游推荐专家。请根据用户偏好和提供的上下文信息，推荐桌游，并以指定的JSON格式返回结果。"

// PromptInput contains the pieces that feed into the prompt builder.
type PromptInput struct {
	Preference  string
	ResultLimit int
	Contexts    []domain.GameContext
}

// PromptBuilder builds the chat messages sent to the LLM. Implementations
// must be pure: identical input yields identical messages.
type PromptBuilder interface {
	Build(input PromptInput) ([]domain.Message, error)
}

// RecommendationPromptBuilder renders the retrieval context and the strict
// two-field JSON output contract into a single user turn.
type RecommendationPromptBuilder struct {
	additionalInstructions []string
}

// NewRecommendationPromptBuilder creates a prompt builder with optional
// extra instructions appended to the task list.
func NewRecommendationPromptBuilder(additionalInstructions ...string) PromptBuilder {
	return &RecommendationPromptBuilder{
		additionalInstructions: additionalInstructions,
	}
}

// Build renders the Messages for the Chat API.
func (b *RecommendationPromptBuilder) Build(input PromptInput) ([]domain.Message, error) {
	if strings.TrimSpace(input.Preference) == "" {
		return nil, fmt.Errorf("preference is required")
	}
	if input.ResultLimit <= 0 {
		return nil, fmt.Errorf("result limit must be positive")
	}

	contextBlock := emptyContextNotice
	if len(input.Contexts) > 0 {
		entries := make([]string, len(input.Contexts))
		for i, game := range input.Contexts {
			entries[i] = formatContextEntry(i+1, game)
		}
		contextBlock = strings.Join(entries, "\n\n")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("作为一位资深的桌游推荐专家，请根据用户的喜好和我们数据库中可能相关的桌游列表，推荐 %d 款最适合的桌游。\n\n", input.ResultLimit))
	sb.WriteString(fmt.Sprintf("用户喜好: %q\n\n", input.Preference))
	sb.WriteString("数据库中检索到的可能相关的桌游信息如下 (如果列表为空，请基于用户喜好和您的广泛知识进行推荐):\n")
	sb.WriteString("--- BEGIN CONTEXT GAMES ---\n")
	sb.WriteString(contextBlock)
	sb.WriteString("\n--- END CONTEXT GAMES ---\n\n")

	sb.WriteString("请仔细分析用户喜好和提供的游戏信息。你的任务是:\n")
	instructions := []string{
		fmt.Sprintf("1. 从提供的游戏列表 (如果适用) 或你的知识库中，挑选出最多 %d 款最符合用户喜好的桌游。", input.ResultLimit),
		"2. 对每个推荐的桌游，请确保它真实存在。",
		"3. 提供一个整体的解释，说明为什么这些桌游适合该用户。",
	}
	instructions = append(instructions, b.additionalInstructions...)
	for _, inst := range instructions {
		sb.WriteString(inst)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("请以JSON格式返回你的推荐，必须包含以下两个字段:\n")
	sb.WriteString("- \"recommended_game_names\": 一个包含推荐桌游准确名称的列表 (例如: [\"卡坦岛\", \"七大奇迹\"])。\n")
	sb.WriteString("- \"explanation\": 一段详细的中文解释，说明这些游戏为什么被推荐，它们如何满足用户的偏好。\n\n")

	sb.WriteString("重要提示:\n")
	sb.WriteString("- 如果提供的上下文中没有合适的游戏，可以从你的知识库中推荐。\n")
	sb.WriteString("- 确保推荐的游戏名称是准确且常见的中文名称。\n")
	sb.WriteString("- 返回的JSON必须严格符合上述结构。\n")

	return []domain.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: sb.String()},
	}, nil
}

func formatContextEntry(ordinal int, game domain.GameContext) string {
	return fmt.Sprintf("%d. 名称: %s\n   描述: %s\n   玩家人数: %s-%s\n   游戏时长: %s-%s 分钟\n   复杂度: %s",
		ordinal,
		optionalString(game.Name, unknownName),
		optionalString(game.Description, unknownDescription),
		optionalInt(game.MinPlayers),
		optionalInt(game.MaxPlayers),
		optionalInt(game.PlayTimeMin),
		optionalInt(game.PlayTimeMax),
		optionalFloat(game.Complexity),
	)
}

func optionalString(value *string, fallback string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return fallback
	}
	return *value
}

func optionalInt(value *int) string {
	if value == nil {
		return unknownNumber
	}
	return strconv.Itoa(*value)
}

func optionalFloat(value *float64) string {
	if value == nil {
		return unknownNumber
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
