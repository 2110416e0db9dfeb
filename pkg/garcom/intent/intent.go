// Package intent classifies the non-product intents of a message: menu
// requests, confirmation, cancellation, delivery-vs-pickup and the like.
// Classification is fixed keyword-set matching over normalized tokens; the
// LLM-free counterpart of what a conversational layer would otherwise ask
// a model for.
package intent

import (
	"regexp"
	"strings"

	"github.com/zapmesa/garcom/pkg/garcom/message"
)

// Intent is a message-level non-product intent tag.
type Intent string

const (
	ShowMenu Intent = "SHOW_MENU"
	Confirm  Intent = "CONFIRM"
	Cancel   Intent = "CANCEL"
	Back     Intent = "BACK"
	Help     Intent = "HELP"
	Reset    Intent = "RESET"
	Pix      Intent = "PIX"
	Delivery Intent = "DELIVERY"
	Pickup   Intent = "PICKUP"
	Greeting Intent = "GREETING"
)

// ordered fixes detection order so repeated analyses yield identical
// action lists.
var ordered = []Intent{ShowMenu, Confirm, Cancel, Back, Help, Reset, Pix, Delivery, Pickup}

// defaultKeywords maps each intent to its trigger phrases, normalized.
// Multi-word phrases must appear as a contiguous token run.
var defaultKeywords = map[Intent][]string{
	ShowMenu: {"cardapio", "menu", "catalogo", "opcoes", "ver produtos"},
	Confirm:  {"confirmar", "confirmo", "confirma", "fechar pedido", "finalizar", "pode fechar", "isso mesmo", "so isso"},
	Cancel:   {"cancelar", "cancela", "desistir", "deixa pra la"},
	Back:     {"voltar", "volta"},
	Help:     {"ajuda", "como funciona", "socorro"},
	Reset:    {"recomecar", "reiniciar", "zerar", "comecar de novo", "limpar pedido"},
	Pix:      {"pix", "chave pix"},
	Delivery: {"entrega", "entregar", "delivery", "pra entregar"},
	Pickup:   {"retirar", "retirada", "buscar", "no balcao"},
}

// Classifier detects intents by keyword sets. Zero value is unusable; use
// NewClassifier, optionally merging tenant overrides on top of defaults.
type Classifier struct {
	keywords map[Intent][]string
}

// NewClassifier returns a classifier with the built-in keyword sets.
func NewClassifier() *Classifier {
	return &Classifier{keywords: defaultKeywords}
}

// NewClassifierWithKeywords merges extra phrases per intent on top of the
// defaults; the built-in table is never mutated.
func NewClassifierWithKeywords(extra map[Intent][]string) *Classifier {
	merged := make(map[Intent][]string, len(defaultKeywords))
	for it, phrases := range defaultKeywords {
		merged[it] = append([]string(nil), phrases...)
	}
	for it, phrases := range extra {
		for _, p := range phrases {
			if norm := message.Normalize(p); norm != "" {
				merged[it] = append(merged[it], norm)
			}
		}
	}
	return &Classifier{keywords: merged}
}

// Detect returns every intent whose keyword set matches the token stream,
// in fixed order, each at most once.
func (c *Classifier) Detect(tokens []string) []Intent {
	if len(tokens) == 0 {
		return nil
	}
	joined := " " + strings.Join(tokens, " ") + " "
	var found []Intent
	for _, it := range ordered {
		for _, phrase := range c.keywords[it] {
			if strings.Contains(joined, " "+phrase+" ") {
				found = append(found, it)
				break
			}
		}
	}
	return found
}

// Fallback patterns, applied only when a whole message produced zero
// actions: a bare greeting or a bare menu question.
var (
	greetingRe = regexp.MustCompile(`^(oi|ola|opa|eai|hey|alo|bom dia|boa tarde|boa noite)\b`)
	menuAskRe  = regexp.MustCompile(`\b(o que (tem|vcs tem|voces tem)|que (tem|vende)|tem o que)\b`)
)

// Fallback checks the raw message against the greeting and bare
// menu-request patterns. At most one intent is returned, menu requests
// taking precedence.
func Fallback(raw string) (Intent, bool) {
	norm := message.Normalize(raw)
	if norm == "" {
		return "", false
	}
	if menuAskRe.MatchString(norm) {
		return ShowMenu, true
	}
	if greetingRe.MatchString(norm) {
		return Greeting, true
	}
	return "", false
}
