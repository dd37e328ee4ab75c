package domain

// Entry representa um par pergunta/resposta da base de conhecimento.
// Cada intent identifica exatamente uma resposta; perguntas quase
// duplicadas podem compartilhar o mesmo intent.
type Entry struct {
	Intent   string `json:"intent"`
	Question string `json:"pergunta"`
	Answer   string `json:"resposta"`
}

// Classification é o resultado tipado do classificador: um intent e a
// confiança associada, sempre em [0,1].
type Classification struct {
	Label      string
	Confidence float64
}
