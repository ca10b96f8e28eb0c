package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tempero/internal/client/models"
)

// List refetches the feed and prints it in server order.
func (a *App) List(ctx context.Context) error {
	if err := a.postService.Refresh(ctx); err != nil {
		return err
	}
	a.printPosts()
	return nil
}

func (a *App) printPosts() {
	posts := a.postService.Posts()
	if len(posts) == 0 {
		printlnFn("Nenhuma publicação ainda.")
		return
	}
	viewer := a.viewerID()
	for _, p := range posts {
		printlnFn(formatPost(p, viewer))
	}
}

// Post creates a post as the logged-in user.
func (a *App) Post(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Faça login para publicar.")
		return nil
	}

	title, err := getSimpleText(a.reader, "Título", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Conteúdo", a.out)
	if err != nil {
		return err
	}

	if _, err := a.postService.Create(ctx, title, content); err != nil {
		return err
	}
	printlnFn("Publicação criada.")
	a.printPosts()
	return nil
}

// Edit changes a post's title and content. Empty answers keep the current
// values of a listed post.
func (a *App) Edit(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		printlnFn("Faça login para editar.")
		return nil
	}

	current, known := a.postService.Find(models.ID(id))

	titlePrompt, contentPrompt := "Novo título", "Novo conteúdo"
	if known {
		titlePrompt = fmt.Sprintf("Novo título [%s]", current.Title)
		contentPrompt = "Novo conteúdo (vazio mantém o atual)"
	}

	title, err := getSimpleText(a.reader, titlePrompt, a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, contentPrompt, a.out)
	if err != nil {
		return err
	}
	if known && title == "" {
		title = current.Title
	}
	if known && content == "" {
		content = current.Content
	}

	if err := a.postService.Edit(ctx, models.ID(id), title, content); err != nil {
		return err
	}
	printlnFn("Publicação atualizada.")
	return nil
}

// Delete asks for confirmation, then removes the post.
func (a *App) Delete(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		printlnFn("Faça login para excluir.")
		return nil
	}

	answer, err := getSimpleText(a.reader, "Tem certeza que deseja excluir esta publicação? (s/N)", a.out)
	if err != nil {
		return err
	}
	if !confirmed(answer) {
		printlnFn("Exclusão cancelada.")
		return nil
	}

	if err := a.postService.Delete(ctx, models.ID(id)); err != nil {
		return err
	}
	printlnFn("Publicação excluída.")
	return nil
}
