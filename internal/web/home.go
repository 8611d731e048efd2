package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Page renders the whole registration document.
func Page(view FormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Esports Team Registration</title>
    <link rel="stylesheet" href="` + esc(assetPath("/static/styles.css")) + `"/>
  </head>
  <body>
    <main class="shell">
      <h1>Esports Team Registration</h1>
`)
		writeSection(&b, view)
		b.WriteString(`    </main>
    <script>
      (function () {
        const scheme = location.protocol === "https:" ? "wss://" : "ws://";
        const socket = new WebSocket(scheme + location.host + "/ws");
        socket.addEventListener("message", (event) => {
          const msg = JSON.parse(event.data);
          const target = document.querySelector(msg.target);
          if (!target) {
            return;
          }
          if (msg.swap === "outer") {
            target.outerHTML = msg.html;
          } else {
            target.innerHTML = msg.html;
          }
        });
      })();
    </script>
  </body>
</html>
`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// RegistrationSection renders the swappable part of the page: banner, form
// and list.
func RegistrationSection(view FormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeSection(&b, view)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeSection(b *strings.Builder, view FormView) {
	b.WriteString(`<section id="registration">`)
	if view.Submitted {
		b.WriteString(`<div class="banner ok" role="status">Registration complete!</div>`)
	}
	if view.Error != "" {
		b.WriteString(`<div class="banner err" role="alert">` + esc(view.Error) + `</div>`)
	}
	writeForm(b, view)
	writeList(b, view.Registrations)
	b.WriteString(`</section>`)
}

func writeForm(b *strings.Builder, view FormView) {
	maxLen := itoa(view.MaxNameLength)
	b.WriteString(`<form class="panel" method="post" action="/register">`)
	b.WriteString(`<input type="hidden" name="current_game" value="` + esc(view.Game) + `"/>`)

	b.WriteString(`<div class="field"><span class="label">Select game</span><div class="games">`)
	for _, game := range view.Games {
		class := ""
		if game.Selected {
			class = ` class="selected"`
		}
		b.WriteString(`<button type="submit" formaction="/game" formnovalidate name="game" value="` + esc(game.Name) + `"` + class + `>` + esc(game.Name) + `</button>`)
	}
	b.WriteString(`</div></div>`)

	b.WriteString(`<div class="field"><label for="team_name">Team name <span class="required">*</span></label>`)
	b.WriteString(`<input id="team_name" type="text" name="team_name" maxlength="` + maxLen + `" placeholder="Enter team name" value="` + esc(view.TeamName) + `" required/></div>`)

	b.WriteString(`<div class="field"><span class="label">Main players (` + itoa(len(view.Players)) + `) <span class="required">*</span></span>`)
	for _, slot := range view.Players {
		b.WriteString(`<input type="text" name="players" maxlength="` + maxLen + `" placeholder="` + esc(slot.Label) + `" value="` + esc(slot.Name) + `" required/>`)
	}
	b.WriteString(`</div>`)

	if len(view.Reserves) > 0 {
		b.WriteString(`<div class="field"><span class="label">Reserve players (` + itoa(len(view.Reserves)) + `) <span class="optional">(optional)</span></span>`)
		for _, slot := range view.Reserves {
			b.WriteString(`<input type="text" name="reserves" maxlength="` + maxLen + `" placeholder="` + esc(slot.Label) + `" value="` + esc(slot.Name) + `"/>`)
		}
		b.WriteString(`</div>`)
	}

	for _, staff := range view.Staff {
		marker := `<span class="optional">(optional)</span>`
		required := ""
		if staff.Required {
			marker = `<span class="required">*</span>`
			required = " required"
		}
		b.WriteString(`<div class="field"><label for="` + esc(staff.Key) + `">` + esc(staff.Label) + ` ` + marker + `</label>`)
		b.WriteString(`<input id="` + esc(staff.Key) + `" type="text" name="` + esc(staff.Key) + `" maxlength="` + maxLen + `" placeholder="Enter ` + esc(strings.ToLower(staff.Label)) + `" value="` + esc(staff.Value) + `"` + required + `/></div>`)
	}

	b.WriteString(`<button type="submit" class="submit">Register team</button>`)
	b.WriteString(`</form>`)
}

func writeList(b *strings.Builder, items []RegistrationItem) {
	if len(items) == 0 {
		return
	}
	b.WriteString(`<div class="panel" id="registrations"><h2>Registered teams (` + itoa(len(items)) + `)</h2>`)
	for _, item := range items {
		b.WriteString(`<article class="team" data-seq="` + itoa(item.Seq) + `"><header><h3>` + esc(item.TeamName) + `</h3><span class="tag">` + esc(item.Game) + `</span></header>`)
		writeNames(b, "Main players", item.Players)
		if len(item.Reserves) > 0 {
			writeNames(b, "Reserves", item.Reserves)
		}
		writeStaffLine(b, "Manager", item.Manager)
		writeStaffLine(b, "Team leader", item.TeamLeader)
		writeStaffLine(b, "Coach", item.Coach)
		b.WriteString(`</article>`)
	}
	b.WriteString(`</div>`)
}

func writeNames(b *strings.Builder, title string, names []string) {
	b.WriteString(`<p><strong>` + esc(title) + `:</strong></p><ul>`)
	for _, name := range names {
		b.WriteString(`<li>` + esc(name) + `</li>`)
	}
	b.WriteString(`</ul>`)
}

func writeStaffLine(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(`<p><strong>` + esc(label) + `:</strong> ` + esc(value) + `</p>`)
}
