package web

import "html/template"

// The pages are deliberately thin: the site's real presentation layer
// lives in the frontend, these templates only have to carry the flows.
const pageTemplates = `
{{define "layout_head"}}<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>{{.Title}} | Mathematical Base Defenders</title></head><body>
<h1>{{.Title}}</h1>{{end}}

{{define "layout_foot"}}</body></html>{{end}}

{{define "home"}}{{template "layout_head" .}}
{{if .Registered}}<p>Registration complete! Check your e-mail for a confirmation link.</p>{{end}}
<p>Welcome to Mathematical Base Defenders.</p>
<ul>
<li><a href="/play">Play</a></li>
<li><a href="/register">Register</a></li>
<li><a href="/leaderboards/standard">Leaderboards</a></li>
<li><a href="/about">About</a></li>
</ul>
{{template "layout_foot" .}}{{end}}

{{define "message"}}{{template "layout_head" .}}
<p>{{.Message}}</p>
{{template "layout_foot" .}}{{end}}

{{define "register"}}{{template "layout_head" .}}
<form method="post" action="/register">
<label>Username <input name="username" required></label>
<label>E-mail <input name="email" type="email" required></label>
<label>Password <input name="password" type="password" required></label>
<div class="g-recaptcha" data-sitekey=""></div>
<input type="hidden" name="csrf-token" value="{{.Token}}">
<button type="submit">Register</button>
</form>
{{template "layout_foot" .}}{{end}}

{{define "request_password_change"}}{{template "layout_head" .}}
<form method="post" action="/request-password-change">
<label>E-mail <input name="email" type="email" required></label>
<div class="g-recaptcha" data-sitekey=""></div>
<input type="hidden" name="csrf-token" value="{{.Token}}">
<button type="submit">Request password change</button>
</form>
{{template "layout_foot" .}}{{end}}

{{define "change_password"}}{{template "layout_head" .}}
<form method="post" action="/change-password">
<label>New password <input name="new-password" type="password" required></label>
<label>Confirm new password <input name="confirm-new-password" type="password" required></label>
<input type="hidden" name="user-id" value="{{.UserID}}">
<input type="hidden" name="email" value="{{.Email}}">
<input type="hidden" name="code" value="{{.Code}}">
<input type="hidden" name="csrf-token" value="{{.Token}}">
<button type="submit">Change password</button>
</form>
{{template "layout_foot" .}}{{end}}

{{define "profile"}}{{template "layout_head" .}}
<p><span style="color:{{.Profile.RankColor}}">{{.Profile.Rank}}</span></p>
<p>Level {{.Profile.Level}} &middot; joined {{.Profile.CreationDateAndTime.Format "2006-01-02"}}</p>
<p>Games played: {{.Profile.Statistics.GamesPlayed}}</p>
{{with .Profile.Statistics.PersonalBestEasyMode}}<p>Easy mode best: {{.Score}} (global rank {{.GlobalRank}})</p>{{end}}
{{with .Profile.Statistics.PersonalBestStdMode}}<p>Standard mode best: {{.Score}} (global rank {{.GlobalRank}})</p>{{end}}
{{template "layout_foot" .}}{{end}}

{{define "leaderboard"}}{{template "layout_head" .}}
<table>
<tr><th>Rank</th><th>Player</th><th>Score</th></tr>
{{range .Entries}}<tr><td>{{.Rank}}</td><td><a href="/users/{{.Username}}">{{.Username}}</a></td><td>{{.Statistics.Score}}</td></tr>
{{end}}
</table>
{{template "layout_foot" .}}{{end}}
`

var templates = template.Must(template.New("pages").Parse(pageTemplates))
