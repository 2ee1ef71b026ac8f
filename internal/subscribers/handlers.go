package subscribers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jimdaga/morning-press/internal/config"
	"github.com/jimdaga/morning-press/internal/web"
)

// HomePage renders the subscription form with the active subscriber count.
func HomePage(store *Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := store.Count()
		if err != nil {
			slog.Error("Failed to count subscribers", "error", err)
		}
		c.HTML(http.StatusOK, "subscribe.html", gin.H{
			"Name":            cfg.NewsletterName,
			"SubscriberCount": count,
			"Flashes":         web.Flashes(c),
		})
	}
}

// Subscribe handles the signup form post. Validation failures flash a
// message and return to the form; success redirects to the thanks page.
func Subscribe(store *Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		name := c.PostForm("name")

		_, err := store.Subscribe(email, name)
		switch {
		case errors.Is(err, ErrInvalidEmail):
			web.Flash(c, "error", "Invalid email format")
			c.Redirect(http.StatusSeeOther, "/")
		case errors.Is(err, ErrAlreadySubscribed):
			web.Flash(c, "error", "Email already subscribed")
			c.Redirect(http.StatusSeeOther, "/")
		case err != nil:
			slog.Error("Subscription failed", "error", err)
			web.Flash(c, "error", "Subscription failed. Please try again.")
			c.Redirect(http.StatusSeeOther, "/")
		default:
			web.Flash(c, "success", "Successfully subscribed!")
			c.Redirect(http.StatusSeeOther, "/success")
		}
	}
}

// SuccessPage renders the post-signup thanks page.
func SuccessPage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "success.html", gin.H{
			"Name": cfg.NewsletterName,
		})
	}
}

// Unsubscribe deactivates the subscriber behind the token in the URL.
func Unsubscribe(store *Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := store.Unsubscribe(c.Param("token"))
		success := err == nil
		if err != nil && !errors.Is(err, ErrInvalidToken) {
			slog.Error("Unsubscribe failed", "error", err)
		}
		status := http.StatusOK
		if !success {
			status = http.StatusNotFound
		}
		c.HTML(status, "unsubscribe.html", gin.H{
			"Name":    cfg.NewsletterName,
			"Success": success,
		})
	}
}

// AdminList renders the active subscriber table.
func AdminList(store *Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		subs, err := store.ActiveSubscribers()
		if err != nil {
			slog.Error("Failed to list subscribers", "error", err)
			c.String(http.StatusInternalServerError, "failed to load subscribers")
			return
		}
		c.HTML(http.StatusOK, "admin_subscribers.html", gin.H{
			"Name":        cfg.NewsletterName,
			"Subscribers": subs,
			"Count":       len(subs),
		})
	}
}

// ExportCSV streams the active subscriber list as a CSV download.
func ExportCSV(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		subs, err := store.ActiveSubscribers()
		if err != nil {
			slog.Error("Failed to export subscribers", "error", err)
			c.String(http.StatusInternalServerError, "failed to export subscribers")
			return
		}

		filename := fmt.Sprintf("subscribers_%s.csv", time.Now().Format("2006-01-02"))
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment; filename="+filename)

		w := csv.NewWriter(c.Writer)
		_ = w.Write([]string{"email", "name", "subscribed_date"})
		for _, sub := range subs {
			_ = w.Write([]string{sub.Email, sub.Name, sub.SubscribedDate.Format(time.RFC3339)})
		}
		w.Flush()
	}
}
