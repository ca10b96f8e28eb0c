package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tempero/internal/client/masks"
	"github.com/dmitrijs2005/tempero/internal/client/models"
	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/dmitrijs2005/tempero/internal/validation"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register walks through the sign-up form. The phone answer is masked
// before validation. The session is left as it was: the user is told to log
// in afterwards.
func (a *App) Register(ctx context.Context) error {
	var form validation.Registration
	var err error

	if form.Name, err = getSimpleText(a.reader, "Nome completo", a.out); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Telefone (XX) XXXXX-XXXX", a.out)
	if err != nil {
		return err
	}
	form.Phone = masks.FormatPhone(phone)
	if form.Phone != phone && form.Phone != "" {
		printlnFn("Telefone:", form.Phone)
	}
	if form.Bio, err = getSimpleText(a.reader, "Bio (opcional)", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Senha", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirmation, err := getPassword(a.reader, "Confirme a senha", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	form.Password = string(password)
	form.PasswordConfirmation = string(confirmation)

	u, err := a.authService.Register(ctx, form)
	if err != nil {
		return err
	}

	name := form.Name
	if u != nil && u.Name != "" {
		name = u.Name
	}
	printlnFn(fmt.Sprintf("Cadastro realizado com sucesso! Bem-vindo(a), %s.", models.FirstName(name)))
	printlnFn("Use 'login' para entrar.")
	return nil
}

// Login asks for credentials, starts the session and shows the feed.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn(fmt.Sprintf("Você já está conectado como %s. Use 'logout' para trocar de conta.", a.status()))
		return nil
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Senha", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, validation.Credentials{Email: email, Password: string(password)})
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Olá, %s!", models.FirstName(u.Name)))
	return a.List(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Você não está conectado.")
		return nil
	}
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Você saiu da sua conta.")
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	u := a.authService.CurrentUser()
	if u == nil {
		printlnFn("Você não está conectado.")
		return nil
	}

	printlnFn(fmt.Sprintf("%s <%s>", u.Name, u.Email))
	if u.Phone != "" {
		printlnFn("Telefone:", u.Phone)
	}
	if u.Bio != "" {
		printlnFn("Bio:", u.Bio)
	}
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.authService.Ping(ctx); err != nil {
		return err
	}
	printlnFn("Servidor disponível em", a.config.BaseURL)
	return nil
}
