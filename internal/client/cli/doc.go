// Package cli implements the interactive job board client: a small REPL
// over the auth and job services.
//
// Commands
//
//	help            list commands
//	signup          create an account and log in
//	login           log in
//	logout          forget the saved session
//	me              show the logged-in profile
//	avatar <file>   upload a profile picture
//	jobs            list jobs, newest first
//	job <id>        show one job
//	addjob          post a job (login required)
//	deletejob <id>  delete a job (login required)
//	exit | quit     leave
//
// Passwords are read without echo and wiped after use.
package cli
