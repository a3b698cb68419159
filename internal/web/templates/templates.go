package templates

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
)

//go:embed *.html
var files embed.FS

// Page names
const (
	PageHome     = "home.html"
	PageGame     = "game.html"
	PageNotFound = "not_found.html"
	PageError    = "error.html"
)

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
}

var (
	base  = template.Must(template.New("").Funcs(funcs).ParseFS(files, "layout.html", "board.html"))
	pages = map[string]*template.Template{
		PageHome:     page(PageHome),
		PageGame:     page(PageGame),
		PageNotFound: page(PageNotFound),
		PageError:    page(PageError),
	}
)

func page(name string) *template.Template {
	return template.Must(template.Must(base.Clone()).ParseFS(files, name))
}

// Page returns a full page, laid out around the named page's content
func Page(name string, data any) (templ.Component, error) {
	t, ok := pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	return templ.FromGoHTML(t.Lookup("layout"), data), nil
}

// Board returns the board fragment on its own, as pushed to live viewers
func Board(game *model.Game) templ.Component {
	return templ.FromGoHTML(base.Lookup("board"), NewBoardView(game))
}

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string
	Message string
}

// PageData is shared by every page
type PageData struct {
	Title string
	Flash *FlashMessage
}

// HomeData is the game list page
type HomeData struct {
	PageData
	Games []model.GameSummary
}

// GameData is the board page
type GameData struct {
	PageData
	Game  *model.Game
	Board BoardView
}

// NotFoundData is the page shown for a missing game
type NotFoundData struct {
	PageData
	What string
}

// ErrorData is the page shown when a handler fails outright
type ErrorData struct {
	PageData
	Message string
}

// CellView is one square of the rendered board
type CellView struct {
	Coordinate string
	Letter     string
	Value      int
	Blank      bool
	Bonus      string
}

// Class returns the CSS classes of the square
func (c CellView) Class() string {
	classes := []string{"cell"}
	if c.Bonus != "" {
		classes = append(classes, "bonus-"+strings.ToLower(c.Bonus))
	}
	if c.Letter != "" {
		classes = append(classes, "tile")
	}
	if c.Blank {
		classes = append(classes, "blank")
	}
	return strings.Join(classes, " ")
}

// RowView is one row of the rendered board
type RowView struct {
	Label string
	Cells []CellView
}

// BoardView is a board laid out for the templates
type BoardView struct {
	GameID     model.GameID
	Columns    []string
	Rows       []RowView
	TotalScore int
	MoveCount  int
}

// NewBoardView lays out a game's board for rendering
func NewBoardView(game *model.Game) BoardView {
	view := BoardView{
		GameID:     game.ID,
		TotalScore: game.TotalScore,
		MoveCount:  game.MoveCount(),
	}
	for col := 0; col < model.BoardSize; col++ {
		view.Columns = append(view.Columns, string(rune('A'+col)))
	}

	for row := 0; row < model.BoardSize; row++ {
		rv := RowView{Label: strconv.Itoa(row + 1)}
		for col := 0; col < model.BoardSize; col++ {
			c, _ := model.NewCoordinate(col, row, model.Vertical)
			cell := CellView{
				Coordinate: c.String(),
				Bonus:      game.Board.Bonus(c).String(),
			}
			if t, ok := game.Board.Get(c); ok {
				cell.Letter = string(t.Face())
				cell.Value = t.Value()
				cell.Blank = t.IsBlank()
			}
			rv.Cells = append(rv.Cells, cell)
		}
		view.Rows = append(view.Rows, rv)
	}
	return view
}
