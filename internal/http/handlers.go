package http

import (
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/patrickhernande1993/novo-lar/internal/core"
	"github.com/patrickhernande1993/novo-lar/internal/receipt"
)

type expenseView struct {
	ID          string
	Description string
	Amount      string
	DueDate     string
	Paid        bool
	HasReceipt  bool
	Receipt     template.URL
}

type draftView struct {
	Description   string
	Amount        string
	DueDate       string
	Paid          bool
	HasAttachment bool
	Receipt       template.URL
	Notice        string
}

type indexView struct {
	Pending  string
	Paid     string
	Overall  string
	Expenses []expenseView
	Draft    draftView
	Error    string
}

func (s *Server) indexData(r *http.Request, errMsg string) indexView {
	totals := s.expenses.Totals(r.Context())
	data := indexView{
		Pending: formatBRL(totals.Pending.Cents),
		Paid:    formatBRL(totals.Paid.Cents),
		Overall: formatBRL(totals.Pending.Add(totals.Paid).Cents),
		Error:   errMsg,
	}
	for _, e := range s.expenses.List(r.Context()) {
		data.Expenses = append(data.Expenses, expenseView{
			ID:          e.ID,
			Description: e.Description,
			Amount:      formatBRL(e.Amount.Cents),
			DueDate:     e.DueDate.String(),
			Paid:        e.Status == core.StatusPaid,
			HasReceipt:  e.ReceiptImage != "",
			Receipt:     template.URL(e.ReceiptImage),
		})
	}
	draft := s.drafts.Current()
	data.Draft = draftView{
		Description:   draft.Description,
		DueDate:       draft.DueDate.String(),
		Paid:          draft.Status == core.StatusPaid,
		HasAttachment: draft.ReceiptImage != "",
		Receipt:       template.URL(draft.ReceiptImage),
		Notice:        s.drafts.LastNotice(),
	}
	if draft.Amount.Cents != 0 {
		data.Draft.Amount = draft.Amount.Decimal()
	}
	return data
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, r, http.StatusOK, "")
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "index.html", s.indexData(r, errMsg)); err != nil {
		s.logger.ErrorContext(r.Context(), "index template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// applyDraftForm pushes posted form fields into the draft. Unchanged
// fields are skipped so an untouched canonical description keeps
// following due date edits.
func (s *Server) applyDraftForm(r *http.Request) error {
	current := s.drafts.Current()

	if desc := sanitizeInput(r.Form.Get("description")); desc != "" && desc != current.Description {
		s.drafts.SetDescription(desc)
	}
	if v := r.Form.Get("dueDate"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return err
		}
		if !d.Equal(current.DueDate.Time) {
			s.drafts.SetDueDate(d)
		}
	}
	if v := r.Form.Get("amount"); v != "" {
		amount, err := core.ParseDecimal(v)
		if err != nil {
			return err
		}
		s.drafts.SetAmount(amount)
	}
	if r.Form.Get("paid") == "on" {
		s.drafts.SetStatus(core.StatusPaid)
	} else {
		s.drafts.SetStatus(core.StatusPending)
	}
	return nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	if err := s.applyDraftForm(r); err != nil {
		s.renderIndex(w, r, http.StatusUnprocessableEntity, "Verifique os campos informados.")
		return
	}
	exp, err := s.drafts.Submit(r.Context())
	if err != nil {
		s.logger.WarnContext(r.Context(), "submit rejected", "error", err)
		s.renderIndex(w, r, http.StatusUnprocessableEntity, "Verifique os campos informados.")
		return
	}
	s.logger.InfoContext(r.Context(), "expense created",
		"id", exp.ID, "amount_cents", exp.Amount.Cents)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleToggleExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.expenses.ToggleStatus(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "toggle failed", "id", id, "error", err)
		http.Error(w, "não foi possível atualizar a parcela", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.expenses.Delete(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "delete failed", "id", id, "error", err)
		http.Error(w, "não foi possível excluir a parcela", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDraftUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	if err := s.applyDraftForm(r); err != nil {
		s.renderIndex(w, r, http.StatusUnprocessableEntity, "Verifique os campos informados.")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReceiptUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReceiptBytes)
	if err := r.ParseMultipartForm(maxReceiptBytes); err != nil {
		http.Error(w, "arquivo grande demais", http.StatusRequestEntityTooLarge)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("receipt")
	if err != nil {
		s.renderIndex(w, r, http.StatusUnprocessableEntity, "Selecione um comprovante.")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "falha lendo o arquivo", http.StatusInternalServerError)
		return
	}

	rev, err := s.drafts.Attach(header.Filename, data)
	if err != nil {
		s.logger.WarnContext(r.Context(), "attachment rejected",
			"filename", header.Filename, "error", err)
		msg := "Não foi possível anexar o comprovante."
		if errors.Is(err, receipt.ErrUnsupportedType) {
			msg = "Formato não suportado. Envie uma imagem ou PDF."
		}
		s.renderIndex(w, r, http.StatusUnprocessableEntity, msg)
		return
	}

	s.drafts.Analyze(r.Context(), rev)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReceiptRemove(w http.ResponseWriter, r *http.Request) {
	s.drafts.RemoveAttachment()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDraftCancel(w http.ResponseWriter, r *http.Request) {
	s.drafts.Cancel()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
