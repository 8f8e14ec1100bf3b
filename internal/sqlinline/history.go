package sqlinline

const QInsertPostHistory = `--sql b07af20f-34fb-4919-8b82-4b6bdf89cbed
insert into post_history (account_id, content_text, external_post_id, impressions, engagement_rate, published_at, created_at)
values ($1, $2, $3, $4, $5, $6, now())
returning id, account_id, content_text, external_post_id, impressions, engagement_rate, published_at, created_at;
`

const QListRecentPostHistory = `--sql dfb240af-99f3-4e1c-abed-9bb6c378784f
select id, account_id, content_text, external_post_id, impressions, engagement_rate, published_at, created_at
from post_history
order by coalesce(impressions, 0) desc, published_at desc
limit $1;
`

const QPostHistoryTotals = `--sql ef148521-bcce-4f77-98e2-b188aeb2333e
select count(*),
       coalesce(sum(impressions), 0),
       coalesce(avg(engagement_rate), 0)
from post_history;
`
