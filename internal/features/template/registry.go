package template

// Registry is a pure lookup over the static template catalog. No mutation,
// no side effects.
type Registry interface {
	Get(id string) *Template
	List() []Template
}

type RegistryImpl struct {
	byID  map[string]*Template
	order []string
}

func NewRegistry() Registry {
	r := &RegistryImpl{byID: make(map[string]*Template)}
	for i := range catalog {
		t := catalog[i]
		r.byID[t.ID] = &t
		r.order = append(r.order, t.ID)
	}
	return r
}

func (r *RegistryImpl) Get(id string) *Template {
	return r.byID[id]
}

func (r *RegistryImpl) List() []Template {
	out := make([]Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

// catalog mirrors the document kinds the office accepts from clients.
var catalog = []Template{
	{
		ID:       "admissao-funcionario",
		Name:     "Admissão de Funcionário",
		Category: CategoryRH,
		Fields: []Field{
			{ID: "nome_completo", Label: "Nome Completo", Type: FieldTypeText, Required: true},
			{ID: "cpf", Label: "CPF", Type: FieldTypeText, Required: true},
			{ID: "rg", Label: "RG", Type: FieldTypeText, Required: true},
			{ID: "data_nascimento", Label: "Data de Nascimento", Type: FieldTypeDate, Required: true},
			{ID: "endereco", Label: "Endereço Completo", Type: FieldTypeTextArea, Required: true},
			{ID: "cargo", Label: "Cargo", Type: FieldTypeText, Required: true},
			{ID: "salario", Label: "Salário (R$)", Type: FieldTypeNumber, Required: true},
			{ID: "data_admissao", Label: "Data de Admissão", Type: FieldTypeDate, Required: true},
			{ID: "tipo_contrato", Label: "Tipo de Contrato", Type: FieldTypeSelect, Options: []string{"CLT", "PJ", "Estágio"}, Required: true},
			{ID: "contrato_experiencia", Label: "Contrato de Experiência?", Type: FieldTypeSelect, Options: []string{"Não", "Sim"}, Required: true},
			{ID: "dias_experiencia", Label: "Dias de Experiência", Type: FieldTypeNumber, Description: "Preencha apenas se houver contrato de experiência"},
			{ID: "pis", Label: "PIS", Type: FieldTypeText, Required: true},
			{ID: "possui_filhos", Label: "Possui Filhos?", Type: FieldTypeCheckbox},
		},
		FileConfig: &FileConfig{AcceptedTypes: "application/pdf,image/*", IsRequired: true},
	},
	{
		ID:       "rescisao-contrato",
		Name:     "Rescisão de Contrato",
		Category: CategoryRH,
		Fields: []Field{
			{ID: "nome_funcionario_rescisao", Label: "Nome do Funcionário", Type: FieldTypeText, Required: true, Step: 1},
			{ID: "cpf_rescisao", Label: "CPF do Funcionário", Type: FieldTypeText, Required: true, Step: 1},
			{ID: "data_aviso_previo", Label: "Data do Aviso Prévio", Type: FieldTypeDate, Required: true, Step: 1},
			{ID: "motivo_rescisao", Label: "Motivo da Rescisão", Type: FieldTypeSelect, Options: []string{"Pedido de demissão", "Demissão sem justa causa", "Demissão por justa causa", "Término de contrato"}, Required: true, Step: 1},
			{ID: "tipo_aviso_previo", Label: "Tipo de Aviso Prévio", Type: FieldTypeSelect, Options: []string{"Indenizado", "Trabalhado"}, Required: true, Step: 1},
		},
		FileConfig: &FileConfig{AcceptedTypes: "application/pdf,image/*", IsRequired: true},
		Steps: []Step{
			{Title: "Etapa 1: Dados para Geração do Aviso Prévio"},
			{Title: "Etapa 2: Anexar Exame Demissional e Documentos"},
		},
	},
	{
		ID:       "aviso-ferias",
		Name:     "Aviso de Férias",
		Category: CategoryRH,
		Fields: []Field{
			{ID: "nome_funcionario_ferias", Label: "Nome do Funcionário", Type: FieldTypeText, Required: true},
			{ID: "data_inicio_ferias", Label: "Data de Início das Férias", Type: FieldTypeDate, Required: true},
			{ID: "quantidade_dias_ferias", Label: "Quantidade de Dias", Type: FieldTypeNumber, Required: true},
			{ID: "vender_ferias", Label: "Deseja vender 1/3 das férias?", Type: FieldTypeSelect, Options: []string{"Não", "Sim"}, Required: true},
			{ID: "adiantar_13", Label: "Deseja adiantar 13º Salário?", Type: FieldTypeSelect, Options: []string{"Não", "Sim"}, Required: true},
		},
	},
}
