package postgres

const queryColumnExists = `
	SELECT EXISTS (
		SELECT FROM information_schema.columns
		WHERE table_name = 'sales_data' AND column_name = $1
	)
`

const querySelectRecords = `
	SELECT order_number, line_number, order_date, quantity,
	       unit_price, sales_amount, status, country, product_line
	FROM sales_data
	ORDER BY order_date, order_number, line_number
`

const querySelectRecordsWithCustomer = `
	SELECT order_number, line_number, order_date, quantity,
	       unit_price, sales_amount, status, country, product_line, customer_name
	FROM sales_data
	ORDER BY order_date, order_number, line_number
`
