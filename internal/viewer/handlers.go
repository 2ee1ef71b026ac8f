package viewer

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/jimdaga/morning-press/internal/config"
	"github.com/jimdaga/morning-press/internal/newsletter"
	"github.com/jimdaga/morning-press/internal/web"
)

// RequireAuth ensures a reader session exists before serving the archive.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID == nil {
			web.Flash(c, "error", "Please register or sign in to view newsletters")
			c.Redirect(http.StatusFound, "/viewer")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user_email", session.Get("user_email"))

		c.Next()
	}
}

// LandingPage renders the register / sign-in forms.
func LandingPage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Name":    cfg.NewsletterName,
			"Flashes": web.Flashes(c),
		})
	}
}

// Register creates or refreshes a reader account and starts a session.
func Register(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		name := c.PostForm("name")

		user, existed, err := store.Register(email, name)
		switch {
		case errors.Is(err, ErrInvalidEmail):
			web.Flash(c, "error", "Invalid email format")
			c.Redirect(http.StatusSeeOther, "/viewer")
			return
		case err != nil:
			slog.Error("Registration failed", "error", err)
			web.Flash(c, "error", "Registration failed. Please try again.")
			c.Redirect(http.StatusSeeOther, "/viewer")
			return
		}

		startSession(c, user.ID, user.Email, user.AccessToken)
		if existed {
			web.Flash(c, "success", "Welcome back!")
		} else {
			web.Flash(c, "success", "Registration successful!")
		}
		c.Redirect(http.StatusSeeOther, "/newsletters")
	}
}

// Login signs in an existing reader by address.
func Login(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := store.Login(c.PostForm("email"))
		switch {
		case errors.Is(err, ErrNotFound):
			web.Flash(c, "error", "Email not registered. Please register first.")
			c.Redirect(http.StatusSeeOther, "/viewer")
			return
		case err != nil:
			slog.Error("Login failed", "error", err)
			web.Flash(c, "error", "Login failed. Please try again.")
			c.Redirect(http.StatusSeeOther, "/viewer")
			return
		}

		startSession(c, user.ID, user.Email, user.AccessToken)
		c.Redirect(http.StatusSeeOther, "/newsletters")
	}
}

// Logout clears the reader session.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		session.Clear()
		_ = session.Save()
		c.Redirect(http.StatusSeeOther, "/viewer")
	}
}

// ArchiveList renders the published editions, newest first.
func ArchiveList(archive *newsletter.Archive, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		editions, err := archive.List()
		if err != nil {
			slog.Error("Failed to list newsletters", "error", err)
			c.String(http.StatusInternalServerError, "failed to load archive")
			return
		}
		c.HTML(http.StatusOK, "newsletters.html", gin.H{
			"Name":     cfg.NewsletterName,
			"Email":    c.GetString("user_email"),
			"Editions": editions,
		})
	}
}

// ReadEdition serves one archived edition's HTML and records the view.
func ReadEdition(archive *newsletter.Archive, store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		filename := c.Param("filename")
		html, date, err := archive.Read(filename)
		if err != nil {
			c.String(http.StatusNotFound, "newsletter not found")
			return
		}

		if userID, ok := c.Get("user_id"); ok {
			if id, ok := userID.(uint); ok {
				store.LogView(id, date.Format("2006-01-02"))
			}
		}

		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
	}
}

// AdminUsers renders the registered reader table.
func AdminUsers(store *Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := store.ActiveUsers()
		if err != nil {
			slog.Error("Failed to list users", "error", err)
			c.String(http.StatusInternalServerError, "failed to load users")
			return
		}
		c.HTML(http.StatusOK, "admin_users.html", gin.H{
			"Name":  cfg.NewsletterName,
			"Users": users,
			"Count": len(users),
		})
	}
}

func startSession(c *gin.Context, userID uint, email, accessToken string) {
	session := sessions.Default(c)
	session.Set("user_id", userID)
	session.Set("user_email", email)
	session.Set("access_token", accessToken)
	_ = session.Save()
}
