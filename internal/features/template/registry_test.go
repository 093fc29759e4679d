package template

import "testing"

func TestCatalogContents(t *testing.T) {
	reg := NewRegistry()

	list := reg.List()
	if len(list) != 3 {
		t.Fatalf("catalog size = %d, want 3", len(list))
	}

	wantOrder := []string{"admissao-funcionario", "rescisao-contrato", "aviso-ferias"}
	for i, id := range wantOrder {
		if list[i].ID != id {
			t.Errorf("list[%d].ID = %q, want %q", i, list[i].ID, id)
		}
	}
}

func TestGetUnknownTemplate(t *testing.T) {
	reg := NewRegistry()
	if tpl := reg.Get("contrato-inexistente"); tpl != nil {
		t.Errorf("Get for unknown id = %+v, want nil", tpl)
	}
}

func TestAdmissaoRequiresFile(t *testing.T) {
	tpl := NewRegistry().Get("admissao-funcionario")
	if tpl == nil {
		t.Fatal("template missing from catalog")
	}
	if tpl.FileConfig == nil || !tpl.FileConfig.IsRequired {
		t.Error("admissao-funcionario must require an attached file")
	}
	if tpl.TotalSteps() != 0 {
		t.Errorf("TotalSteps = %d, want 0", tpl.TotalSteps())
	}
}

func TestRescisaoHasTwoSteps(t *testing.T) {
	tpl := NewRegistry().Get("rescisao-contrato")
	if tpl == nil {
		t.Fatal("template missing from catalog")
	}
	if tpl.TotalSteps() != 2 {
		t.Errorf("TotalSteps = %d, want 2", tpl.TotalSteps())
	}

	// Every field must belong to a declared step.
	for _, f := range tpl.Fields {
		if f.Step < 1 || f.Step > tpl.TotalSteps() {
			t.Errorf("field %q has step %d outside 1..%d", f.ID, f.Step, tpl.TotalSteps())
		}
	}
}

func TestAvisoFeriasHasNoFileConfig(t *testing.T) {
	tpl := NewRegistry().Get("aviso-ferias")
	if tpl == nil {
		t.Fatal("template missing from catalog")
	}
	if tpl.FileConfig != nil {
		t.Errorf("aviso-ferias must not ask for a file, got %+v", tpl.FileConfig)
	}
}
