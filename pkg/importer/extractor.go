package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/artem13815/cvbuilder/pkg/llm"
	"github.com/artem13815/cvbuilder/pkg/profile"
)

// Extractor превращает сырой текст резюме в PartialProfile через LLM.
// Дальше по конвейеру кандидат уходит в слияние с текущим профилем.
type Extractor struct {
	llm      llm.ChatModel
	maxChars int
}

func NewExtractor(model llm.ChatModel) *Extractor {
	return &Extractor{llm: model, maxChars: 12000}
}

// ExtractProfile запрашивает у LLM строгий JSON и разбирает его в
// кандидата. Кандидат нормализуется здесь же: граница импорта отвечает за
// форму данных, слияние форму не проверяет.
func (e *Extractor) ExtractProfile(ctx context.Context, resumeText string) (profile.PartialProfile, error) {
	text := strings.TrimSpace(resumeText)
	if text == "" {
		return profile.PartialProfile{}, errors.New("пустой текст резюме")
	}
	if len(text) > e.maxChars {
		text = text[:e.maxChars]
	}
	if e.llm == nil {
		return profile.PartialProfile{}, errors.New("LLM не настроена")
	}

	system := "Ты HR-аналитик. Верни результат СТРОГО в JSON (без markdown/код-блоков/пояснений). Пустые массивы всегда возвращай как [], не null. Не выдумывай факты."
	user := fmt.Sprintf(
		"Текст резюме:\n<<<\n%s\n>>>\n\nВерни СТРОГО один JSON-объект по схеме:\n{\n  \"firstName\":string, \"lastName\":string, \"email\":string, \"phone\":string,\n  \"location\":string, \"website\":string, \"linkedinUrl\":string, \"githubUrl\":string,\n  \"workExperience\": [{\"company\":string,\"position\":string,\"location\":string,\"date\":string,\"description\":string[],\"technologies\":string[]}],\n  \"education\": [{\"school\":string,\"degree\":string,\"field\":string,\"date\":string,\"location\":string,\"achievements\":string[]}],\n  \"projects\": [{\"name\":string,\"description\":string[],\"technologies\":string[],\"url\":string,\"githubUrl\":string,\"date\":string}],\n  \"skills\": [{\"category\":string,\"items\":string[]}]\n}\n\nПравила:\n- Никаких дополнительных полей\n- Никакого markdown\n- Если список пустой — []\n- Поле, которого нет в резюме, — пустая строка\n",
		text,
	)

	raw, err := e.llm.Ask(ctx, system, user)
	if err != nil {
		return profile.PartialProfile{}, err
	}

	var pp profile.PartialProfile
	if err := decodeLLMJSON(raw, &pp); err != nil {
		return profile.PartialProfile{}, err
	}
	Sanitize(&pp)
	return pp, nil
}

// decodeLLMJSON разбирает ответ модели: сперва как есть, затем best-effort
// вытаскивает JSON-объект из окружающего текста.
func decodeLLMJSON(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	if i := strings.Index(raw, "{"); i >= 0 {
		if j := strings.LastIndex(raw, "}"); j > i {
			if err := json.Unmarshal([]byte(raw[i:j+1]), v); err == nil {
				return nil
			}
		}
	}
	return errors.New("не удалось распарсить JSON ответ LLM")
}
