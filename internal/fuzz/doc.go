// Package fuzztests houses Go fuzz harnesses for the nx front-end
// (source -> lexer -> parser). They guard against panics, hangs and broken
// span or bracket invariants on arbitrary input.
//
// Назначение: прогонять произвольные байты через лексер и парсер и проверять
// инварианты результата.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
