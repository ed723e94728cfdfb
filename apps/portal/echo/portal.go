package echoapi

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/registrar/apps/di"
	"github.com/trezcool/registrar/core"
	"github.com/trezcool/registrar/core/auth"
	"github.com/trezcool/registrar/core/locale"
	"github.com/trezcool/registrar/core/router"
	"github.com/trezcool/registrar/core/session"
	"github.com/trezcool/registrar/core/toast"
)

type (
	homeResponse struct {
		AppName       string          `json:"appName"`
		Build         string          `json:"build"`
		Lang          locale.Lang     `json:"lang"`
		Dir           string          `json:"dir"`
		BodyClass     string          `json:"bodyClass"`
		Authenticated bool            `json:"authenticated"`
		Location      router.Location `json:"location"`
	}

	sessionResponse struct {
		Authenticated    bool                  `json:"authenticated"`
		UserData         session.Profile       `json:"userData"`
		AppCategories    []session.AppCategory `json:"appCategories"`
		UserApplications []session.Application `json:"userApplications"`
		ExpiresIn        float64               `json:"expiresIn,omitempty"` // seconds
	}

	loginResponse struct {
		Detail   string          `json:"detail"`
		Location router.Location `json:"location"`
	}

	navigateRequest struct {
		Path  string              `json:"path" validate:"required"`
		Query map[string][]string `json:"query"`
	}

	langRequest struct {
		Lang locale.Lang `json:"lang"`
	}

	// universityId is prefs.NoUniversity (-1) when none is selected
	transferUniversity struct {
		UniversityID *int `json:"universityId" validate:"required,min=-1,ne=0"`
	}

	langResponse struct {
		Lang      locale.Lang `json:"lang"`
		Dir       string      `json:"dir"`
		BodyClass string      `json:"bodyClass"`
	}
)

type portalApi struct {
	deps *di.Container
}

func registerPortalAPI(app *echo.Echo, deps *di.Container) {
	api := portalApi{deps: deps}

	app.GET("/", api.home)

	sg := app.Group("/session")
	sg.GET("", api.sessionRetrieve)
	sg.POST("/login", api.sessionLogin)
	sg.POST("/logout", api.sessionLogout)
	sg.POST("/permissions", api.sessionRefreshPermissions)

	app.POST("/navigate", api.navigate)
	app.PUT("/lang", api.langUpdate)
	app.GET("/toasts", api.toastsDrain)

	pg := app.Group("/prefs", api.transferStudentsOnly)
	pg.GET("/transferUniversity", api.transferUniversityRetrieve)
	pg.PUT("/transferUniversity", api.transferUniversityUpdate)
}

// Handlers

func (api *portalApi) home(ctx echo.Context) error {
	d := api.deps
	return ctx.JSON(http.StatusOK, homeResponse{
		AppName:       d.Conf.AppName,
		Build:         d.Conf.Build,
		Lang:          d.Locale.Lang(),
		Dir:           d.Locale.TextDirection(),
		BodyClass:     d.Locale.BodyClass(),
		Authenticated: d.Session.IsAuthenticated(),
		Location:      d.Router.Current(),
	})
}

func (api *portalApi) sessionRetrieve(ctx echo.Context) error {
	snap := api.deps.Session.Snapshot()
	resp := sessionResponse{
		Authenticated:    snap.IsAuthenticated(),
		UserData:         snap.UserData,
		AppCategories:    snap.AppCategories,
		UserApplications: snap.UserApplications,
	}
	if claims, err := api.deps.Session.Claims(); err == nil {
		resp.ExpiresIn = claims.ExpiresIn(nowFunc()).Seconds()
	}
	return ctx.JSON(http.StatusOK, resp)
}

// sessionLogin logs in, then sends the user back to the page that required it.
func (api *portalApi) sessionLogin(ctx echo.Context) error {
	data := new(auth.LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := api.deps.Validate.Struct(data); err != nil {
		return err
	}

	d := api.deps
	reqCtx := ctx.Request().Context()
	resp, err := d.Client.Login(reqCtx, *data)
	if err != nil {
		return err
	}
	d.Session.Save(reqCtx, resp.Payload)
	d.Toasts.Show(resp.Detail, toast.Success)

	next := router.PathHome
	if redirect := d.Router.Current().Query.Get("redirect"); redirect != "" {
		next = redirect
	}
	d.Router.Push(next, nil)

	return ctx.JSON(http.StatusOK, loginResponse{Detail: resp.Detail, Location: d.Router.Current()})
}

func (api *portalApi) sessionLogout(ctx echo.Context) error {
	d := api.deps
	d.Session.Reset(ctx.Request().Context())
	d.Router.Push(router.PathLogin, nil)
	return ctx.JSON(http.StatusOK, d.Router.Current())
}

func (api *portalApi) sessionRefreshPermissions(ctx echo.Context) error {
	d := api.deps
	reqCtx := ctx.Request().Context()
	resp, err := d.Client.GetUserPermissions(reqCtx)
	if err != nil {
		return err
	}
	d.Session.ApplyPermissions(reqCtx, resp.Payload.UserPermissions)
	return ctx.JSON(http.StatusOK, resp.Payload.UserPermissions)
}

// navigate runs the guards; a denied navigation is a normal answer carrying the redirect.
func (api *portalApi) navigate(ctx echo.Context) error {
	data := new(navigateRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := api.deps.Validate.Struct(data); err != nil {
		return err
	}
	out := api.deps.Router.Push(data.Path, url.Values(data.Query))
	return ctx.JSON(http.StatusOK, out)
}

// langUpdate switches to the requested language, or toggles it when none is given.
func (api *portalApi) langUpdate(ctx echo.Context) error {
	data := new(langRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	d := api.deps
	reqCtx := ctx.Request().Context()
	if data.Lang == "" {
		d.Locale.ChangeLang(reqCtx)
	} else {
		lang, err := locale.ParseLang(string(data.Lang))
		if err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "lang", Error: locale.ErrUnknownLang.Error()})
		}
		d.Locale.ChangeLang(reqCtx, lang)
	}

	return ctx.JSON(http.StatusOK, langResponse{
		Lang:      d.Locale.Lang(),
		Dir:       d.Locale.TextDirection(),
		BodyClass: d.Locale.BodyClass(),
	})
}

func (api *portalApi) toastsDrain(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.deps.Toasts.Drain(api.deps.Locale.Lang()))
}

// transferStudentsOnly restricts a group to users who may open the transfer screen.
func (api *portalApi) transferStudentsOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if !api.deps.Session.HasPermission(session.TransferStudents) {
			return echo.ErrForbidden
		}
		return next(ctx)
	}
}

func (api *portalApi) transferUniversityRetrieve(ctx echo.Context) error {
	id := api.deps.Prefs.SelectedTransferUniversity()
	return ctx.JSON(http.StatusOK, transferUniversity{UniversityID: &id})
}

func (api *portalApi) transferUniversityUpdate(ctx echo.Context) error {
	data := new(transferUniversity)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := api.deps.Validate.Struct(data); err != nil {
		return err
	}
	api.deps.Prefs.SetSelectedTransferUniversity(ctx.Request().Context(), *data.UniversityID)
	return api.transferUniversityRetrieve(ctx)
}
