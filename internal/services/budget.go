package services

// ExceedsBudget - чистая проверка порога: тревога только при строгом
// превышении лимита накопленной суммой |расходов| по категории
func ExceedsBudget(limit int64, spent int64) bool {
	return spent > limit
}
