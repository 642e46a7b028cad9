// Package fuzztests houses Go fuzz harnesses for the RSL front end
// (source -> lexer -> parser -> engine queries). Arbitrary bytes must never
// panic or hang any of them.
//
// Назначение: загрузить байты в FileSet или движок и прогнать лексер,
// разбор и запросы по каждой позиции.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/engine.

package fuzztests
