package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/services"
	"github.com/dmitrijs2005/jobboard/internal/common"
)

// Input indirections, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// describeError turns service errors into something a user can act on.
func describeError(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		return "please log in first"
	case errors.Is(err, client.ErrUnauthorized):
		return "session expired, please log in again"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return err.Error()
	}
}

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

// Signup asks for the profile fields and a password, creates the account
// and keeps the returned session.
func (a *App) Signup(ctx context.Context) error {
	var req models.SignupRequest
	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &req.Name},
		{"Username", &req.Username},
		{"Phone number", &req.PhoneNumber},
		{"Gender", &req.Gender},
		{"Date of birth (YYYY-MM-DD)", &req.DateOfBirth},
		{"Membership status", &req.MembershipStatus},
		{"Address", &req.Address},
		{"Bio (optional)", &req.Bio},
	}
	for _, f := range fields {
		v, err := a.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Signup(ctx, req, password)
	if err != nil {
		return err
	}

	a.userName = s.Username
	fmt.Fprintf(a.out, "Welcome, %s!\n", s.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := a.prompt("Username")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	a.userName = s.Username
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.auth.Me(ctx)
	if err != nil {
		a.syncSession(ctx, err)
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", u.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", u.Name)
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Phone:\t%s\n", u.PhoneNumber)
	fmt.Fprintf(tw, "Membership:\t%s\n", u.MembershipStatus)
	fmt.Fprintf(tw, "Address:\t%s\n", u.Address)
	if u.Bio != "" {
		fmt.Fprintf(tw, "Bio:\t%s\n", u.Bio)
	}
	if u.ProfilePicture != "" {
		fmt.Fprintf(tw, "Picture:\t%s\n", u.ProfilePicture)
	}
	return tw.Flush()
}

func (a *App) Avatar(ctx context.Context, path string) error {
	key, err := a.auth.UploadAvatar(ctx, path)
	if err != nil {
		a.syncSession(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Profile picture uploaded (%s)\n", key)
	return nil
}

func (a *App) Jobs(ctx context.Context) error {
	jobs, err := a.jobs.List(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No jobs posted yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Company.Name, j.Location)
	}
	return tw.Flush()
}

func (a *App) Job(ctx context.Context, id string) error {
	j, err := a.jobs.Get(ctx, id)
	if err != nil {
		return err
	}
	printJob(a.out, j)
	return nil
}

func printJob(w io.Writer, j *models.Job) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", j.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", j.Title)
	fmt.Fprintf(tw, "Type:\t%s\n", j.Type)
	fmt.Fprintf(tw, "Company:\t%s\n", j.Company.Name)
	if j.Location != "" {
		fmt.Fprintf(tw, "Location:\t%s\n", j.Location)
	}
	if j.Salary > 0 {
		fmt.Fprintf(tw, "Salary:\t%.2f\n", j.Salary)
	}
	if len(j.Requirements) > 0 {
		fmt.Fprintf(tw, "Requirements:\t%s\n", strings.Join(j.Requirements, ", "))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%s\n", j.Description)
}

// AddJob collects a posting interactively and submits it.
func (a *App) AddJob(ctx context.Context) error {
	if !a.isLoggedIn() {
		return services.ErrNotLoggedIn
	}

	job := &models.Job{}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Title", &job.Title},
		{"Type (e.g. Full-time)", &job.Type},
		{"Company name", &job.Company.Name},
		{"Company contact email (optional)", &job.Company.ContactEmail},
		{"Location (optional)", &job.Location},
	}
	for _, f := range fields {
		v, err := a.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	salary, err := a.prompt("Salary (optional)")
	if err != nil {
		return err
	}
	if salary != "" {
		job.Salary, err = strconv.ParseFloat(salary, 64)
		if err != nil {
			return errors.New("salary must be a number")
		}
	}

	reqs, err := a.prompt("Requirements, comma separated (optional)")
	if err != nil {
		return err
	}
	for _, r := range strings.Split(reqs, ",") {
		if r = strings.TrimSpace(r); r != "" {
			job.Requirements = append(job.Requirements, r)
		}
	}

	job.Description, err = getMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	created, err := a.jobs.Create(ctx, job)
	if err != nil {
		a.syncSession(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Job posted with id %s\n", created.ID)
	return nil
}

func (a *App) DeleteJob(ctx context.Context, id string) error {
	if err := a.jobs.Delete(ctx, id); err != nil {
		a.syncSession(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Job deleted")
	return nil
}

// syncSession drops the prompt's username once the service has discarded
// the session.
func (a *App) syncSession(ctx context.Context, err error) {
	if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, services.ErrNotLoggedIn) {
		a.restoreSession(ctx)
	}
}
