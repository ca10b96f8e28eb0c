package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/tempero/internal/client/client"
	"github.com/dmitrijs2005/tempero/internal/client/models"
	"github.com/dmitrijs2005/tempero/internal/client/services"
	"github.com/dmitrijs2005/tempero/internal/validation"
)

const dateLayout = "02/01/2006 15:04"

// reportError prints field errors one per line, everything else as a banner.
func reportError(err error) {
	if errors.Is(err, io.EOF) {
		printlnFn()
		return
	}
	if errors.Is(err, services.ErrBusy) {
		printlnFn("Aguarde a operação em andamento terminar.")
		return
	}

	if fe := client.FieldErrorsOf(err); len(fe) > 0 {
		printlnFn("Corrija os campos abaixo:")
		for _, k := range fe.Keys() {
			printlnFn(fmt.Sprintf("  - %s: %s", k, fe[k]))
		}
		if _, ok := fe[validation.FieldPassword]; ok {
			printlnFn(passwordHelp())
		}
		return
	}

	printlnFn(client.UserMessage(err))
}

func passwordHelp() string {
	return fmt.Sprintf("  A senha precisa ter de %d a %d caracteres, com letra maiúscula, minúscula, número e um de %s",
		validation.MinPasswordLength, validation.MaxPasswordLength, validation.PasswordSpecials)
}

// formatPost renders one post. Posts by viewerID are marked.
func formatPost(p models.Post, viewerID models.ID) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#%s  %s", p.ID, p.Title)
	if viewerID != "" && p.AuthorID == viewerID {
		b.WriteString("  (sua publicação)")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "    por %s", p.AuthorName())
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(&b, " em %s", p.CreatedAt.In(time.Local).Format(dateLayout))
	}
	b.WriteString("\n")

	for _, line := range strings.Split(p.Content, "\n") {
		b.WriteString("    " + line + "\n")
	}
	return b.String()
}
