package types

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})
	// LogNoData reporta um arquivo de entrada sem registros correspondentes.
	LogNoData(format string, a ...interface{})

	// Summary imprime uma linha do bloco final; ok=false usa a cor de falha.
	Summary(ok bool, format string, a ...interface{})

	Status(message string) StatusHandle
	CreateTable() TableInterface
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}
