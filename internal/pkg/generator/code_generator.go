package generator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type CodeGenerator struct{}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// GenerateCheckoutID returns ids of the form CHK-1a2b3c4d5e6f.
func (g *CodeGenerator) GenerateCheckoutID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("CHK-%s", raw[:12])
}

// GenerateIdempotencyKey returns a fresh key for one remote sale submission.
func (g *CodeGenerator) GenerateIdempotencyKey() string {
	return uuid.NewString()
}

func (g *CodeGenerator) GenerateRequestID() string {
	return uuid.NewString()
}
