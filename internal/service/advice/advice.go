// Package advice wraps the text-generation endpoint behind calls that never fail:
// any error or empty reply becomes a fixed fallback message.
package advice

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
)

const (
	stylistInstruction    = "You are a world-class fashion stylist for Vogue & Verve. Provide concise, trendy, and sophisticated fashion advice. Keep answers under 3 sentences."
	copywriterInstruction = "You are a creative copywriter for a high-end fashion brand."

	FallbackAdvice      = "Our stylist is currently busy, please try again later!"
	EmptyAdvice         = "I'm sorry, I couldn't generate fashion advice at the moment."
	FallbackDescription = "Elegant craftsmanship meets modern style."
	EmptyDescription    = "Premium quality and elegant design."
)

// Generator produces text for prompt under a system instruction.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

type Client struct {
	gen    Generator
	logger *log.Logger
}

// New returns a Client. A nil gen makes every call return its fallback, which is
// how the service runs without an API key.
func New(gen Generator, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{gen: gen, logger: logger}
}

// FashionAdvice answers a shopper's styling question.
func (c *Client) FashionAdvice(ctx context.Context, prompt string) string {
	return c.generate(ctx, "fashion advice", stylistInstruction, prompt, EmptyAdvice, FallbackAdvice)
}

// ProductDescription drafts catalog copy for a product name.
func (c *Client) ProductDescription(ctx context.Context, productName string) string {
	prompt := fmt.Sprintf("Generate a luxury fashion description for a product named %q. Focus on quality, craftsmanship, and style.", productName)
	return c.generate(ctx, "product description", copywriterInstruction, prompt, EmptyDescription, FallbackDescription)
}

func (c *Client) generate(ctx context.Context, op, system, prompt, empty, fallback string) string {
	if c.gen == nil {
		return fallback
	}
	text, err := c.gen.Generate(ctx, system, prompt)
	if err != nil {
		c.logger.Printf("advice: %s error=%v", op, err)
		return fallback
	}
	if strings.TrimSpace(text) == "" {
		return empty
	}
	return text
}
