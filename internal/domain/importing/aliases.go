package importing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Aliases translates localized spreadsheet headers into the vocabulary used by
// column names. Keys are folded: lower case, accents stripped, punctuation
// collapsed to single spaces.
type Aliases struct {
	Phrases   map[string]string
	Tokens    map[string]string
	StopWords map[string]struct{}
}

// DefaultAliases covers the Portuguese headers found in exported spreadsheets.
var DefaultAliases = Aliases{
	Phrases: map[string]string{
		"nome completo":        "full name",
		"nome do cliente":      "full name",
		"nome do profissional": "full name",
		"data de nascimento":   "birth date",
		"data nascimento":      "birth date",
		"nascimento":           "birth date",
		"e mail":               "email",
		"telefone celular":     "phone",
		"forma de pagamento":   "method",
		"metodo de pagamento":  "method",
		"data do pagamento":    "payment date",
		"data do agendamento":  "appointment date",
		"data de contratacao":  "hire date",
		"data de inicio":       "start date",
		"data de termino":      "end date",
		"taxa de comissao":     "commission rate",
		"comissao":             "commission rate",
		"duracao":              "duration minutes",
		"duracao minutos":      "duration minutes",
		"canal de marketing":   "marketing channel",
		"horario":              "start time",
	},
	Tokens: map[string]string{
		"nome":          "name",
		"completo":      "full",
		"data":          "date",
		"nascimento":    "birth",
		"telefone":      "phone",
		"celular":       "phone",
		"endereco":      "address",
		"cidade":        "city",
		"cpf":           "document",
		"documento":     "document",
		"observacoes":   "notes",
		"observacao":    "notes",
		"notas":         "notes",
		"descricao":     "description",
		"preco":         "price",
		"valor":         "amount",
		"cliente":       "customer",
		"profissional":  "professional",
		"servico":       "service",
		"agendamento":   "appointment",
		"pagamento":     "payment",
		"metodo":        "method",
		"forma":         "method",
		"situacao":      "status",
		"custo":         "cost",
		"ativo":         "active",
		"inicio":        "start",
		"fim":           "end",
		"termino":       "end",
		"duracao":       "duration",
		"minutos":       "minutes",
		"comissao":      "commission",
		"taxa":          "rate",
		"especialidade": "specialty",
		"canal":         "channel",
		"contratacao":   "hire",
		"hora":          "time",
	},
	StopWords: map[string]struct{}{
		"de": {}, "da": {}, "do": {}, "das": {}, "dos": {}, "e": {}, "em": {}, "o": {}, "a": {},
	},
}

// Translate returns the alias form of header, or "" when no alias applies.
func (a Aliases) Translate(header string) string {
	folded := foldHeader(header)
	if folded == "" {
		return ""
	}
	if phrase, ok := a.Phrases[folded]; ok {
		return phrase
	}

	words := strings.Fields(folded)
	out := make([]string, 0, len(words))
	changed := false
	for _, word := range words {
		if _, stop := a.StopWords[word]; stop {
			changed = true
			continue
		}
		if alias, ok := a.Tokens[word]; ok {
			out = append(out, alias)
			changed = true
			continue
		}
		out = append(out, word)
	}
	if !changed || len(out) == 0 {
		return ""
	}
	return strings.Join(out, " ")
}

func foldHeader(header string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripAccents, header)
	if err != nil {
		folded = header
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
