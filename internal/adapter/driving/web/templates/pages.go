package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	vm "github.com/dltoledo/pautapanel/internal/adapter/driving/web/viewmodel"
)

// KeyForm renders the access key entry control shown on every page.
func KeyForm(denied bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<form class="key-form" method="post" action="/key">
<label for="key">Insira a chave de acesso</label>
<input type="password" id="key" name="key" autofocus>
<button type="submit">Entrar</button>
</form>
`); err != nil {
			return err
		}
		if denied {
			_, err := io.WriteString(w, `<p class="error">Chave inválida.</p>`+"\n")
			return err
		}
		return nil
	})
}

// ErrorPage renders a blocking, user-visible error message.
func ErrorPage(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p class="error">%s</p>`+"\n", esc(message))
		return err
	})
}

// Board renders the schedule grouped by day and room for the given role.
func Board(board vm.BoardViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		header := "⚖ Painel das Autoridades"
		if board.ShowParties {
			header = "📌 Painel dos Secretários"
		}
		if _, err := fmt.Fprintf(w, `<header><h1>%s</h1><a class="logout" href="/logout">Sair</a></header>`+"\n", esc(header)); err != nil {
			return err
		}

		if err := roomFilter(board).Render(ctx, w); err != nil {
			return err
		}

		if len(board.Days) == 0 {
			_, err := io.WriteString(w, `<p class="warning">Selecione ao menos uma sala.</p>`+"\n")
			return err
		}

		for _, day := range board.Days {
			if _, err := fmt.Fprintf(w, `<section class="day"><h2>📅 %s</h2><div class="rooms">`+"\n", esc(day.Label)); err != nil {
				return err
			}
			for _, room := range day.Rooms {
				if err := roomColumn(room, board.ShowParties).Render(ctx, w); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</div></section>\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// roomFilter renders the multi-select room filter as a checkbox form.
func roomFilter(board vm.BoardViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		selected := make(map[string]bool, len(board.SelectedRooms))
		for _, room := range board.SelectedRooms {
			selected[room] = true
		}

		if _, err := io.WriteString(w, `<form class="room-filter" method="get" action="/">
<fieldset><legend>Filtrar salas:</legend>
`); err != nil {
			return err
		}
		for _, room := range board.AllRooms {
			checked := ""
			if selected[room] {
				checked = " checked"
			}
			if _, err := fmt.Fprintf(w, `<label><input type="checkbox" name="room" value="%s"%s> %s</label>`+"\n",
				esc(room), checked, esc(room)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</fieldset><button type="submit">Aplicar</button></form>`+"\n")
		return err
	})
}

func roomColumn(room vm.RoomViewModel, showParties bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="room"><h3>🏛 Sala %s</h3>`+"\n", esc(room.Name)); err != nil {
			return err
		}
		for _, proc := range room.Processes {
			if err := processBox(proc, showParties).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}

// processBox renders one process block: the hearing header plus, for the
// secretary role only, the party rows.
func processBox(proc vm.ProcessViewModel, showParties bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<article class="process">
<h4>⏰ %s</h4>
<p><strong>Processo:</strong> %s</p>
<p><strong>Tipo:</strong> %s</p>
<p><a href="%s">🔗 Link do processo</a></p>
<p><strong>Dimensão:</strong> %s</p>
`,
			esc(proc.Timestamp),
			esc(proc.ProcessNumber),
			esc(proc.Type),
			esc(string(templ.URL(proc.Link))),
			esc(proc.Dimension),
		)
		if err != nil {
			return err
		}

		if proc.SummaryHTML != "" {
			if _, err := io.WriteString(w, `<details><summary>Resumo dos fatos</summary><div class="summary">`); err != nil {
				return err
			}
			// Sanitized upstream by RenderMarkdown.
			if err := templ.Raw(proc.SummaryHTML).Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</div></details>\n"); err != nil {
				return err
			}
		}

		if showParties && len(proc.Parties) > 0 {
			if _, err := io.WriteString(w, `<h5>Partes:</h5>`+"\n"); err != nil {
				return err
			}
			for _, party := range proc.Parties {
				if _, err := fmt.Fprintf(w, `<div class="party"><div class="party-name">• %s</div><div class="party-detail">Telefone: %s<br>Intimação: %s</div></div>`+"\n",
					esc(party.Name), esc(party.Phone), esc(party.Notification)); err != nil {
					return err
				}
			}
		}

		_, err = io.WriteString(w, "</article>\n")
		return err
	})
}

// Admin renders the dataset replacement panel.
func Admin(admin vm.AdminViewModel, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header><h1>🗂 Painel de Administração da Base</h1><a class="logout" href="/logout">Sair</a></header>
<p class="info">Use este painel para atualizar o arquivo da base de audiências.</p>
`); err != nil {
			return err
		}

		if admin.Uploaded {
			if _, err := io.WriteString(w, `<p class="success">Base atualizada com sucesso!</p>`+"\n"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `<form class="upload-form" method="post" action="/upload" enctype="multipart/form-data">
<input type="hidden" name="csrf_token" value="%s">
<label for="file">📤 Enviar novo CSV</label>
<input type="file" id="file" name="file" accept=".csv" required>
<button type="submit">Enviar</button>
</form>
`, esc(csrfToken)); err != nil {
			return err
		}

		if len(admin.Uploads) == 0 {
			return nil
		}

		if _, err := io.WriteString(w, `<h2>Últimos envios</h2>
<table class="uploads"><thead><tr><th>Quando</th><th>Tamanho</th><th>Revisão</th></tr></thead><tbody>
`); err != nil {
			return err
		}
		for _, row := range admin.Uploads {
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%d bytes</td><td><code>%s</code></td></tr>`+"\n",
				esc(row.UploadedAt), row.SizeBytes, esc(shortSHA(row.SHA))); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody></table>\n")
		return err
	})
}

func shortSHA(sha string) string {
	const n = 7
	if len(sha) > n {
		return sha[:n]
	}
	return sha
}
